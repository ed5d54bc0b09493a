package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"go_vpnadmin/internal/model"
	"go_vpnadmin/internal/orchestrator"
)

type clientStore struct {
	db *gorm.DB
}

func (r *clientStore) Insert(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert client %q: %w", client.Username, orchestrator.ErrDuplicateKey)
		}
		return err
	}
	return nil
}

func (r *clientStore) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientStore) GetByUsername(ctx context.Context, username string) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientStore) List(ctx context.Context, filter orchestrator.ClientFilter) ([]model.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Client{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Expired != nil {
		if *filter.Expired {
			query = query.Where("expires_at < ?", time.Now().UTC())
		} else {
			query = query.Where("expires_at >= ?", time.Now().UTC())
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	if err := query.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientStore) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete removes the audit entries first, then the client row. Callers run
// this inside Transact so both steps land or neither does.
func (r *clientStore) Delete(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Where("client_id = ?", client.ID).Delete(&model.Operation{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(client).Error
}

func (r *clientStore) ListExpiredActive(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", model.ClientStatusActive, time.Now().UTC()).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
