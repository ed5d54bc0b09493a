package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"go_vpnadmin/internal/model"
)

type auditLog struct {
	db *gorm.DB
}

func (r *auditLog) Append(ctx context.Context, clientID string, action model.ActionType, payload map[string]any, result model.OperationResult, errText string) (*model.Operation, error) {
	op := &model.Operation{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Action:   action,
		Result:   result,
		Error:    errText,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal audit payload: %w", err)
		}
		op.Payload = datatypes.JSON(raw)
	}
	if err := r.db.WithContext(ctx).Create(op).Error; err != nil {
		return nil, err
	}
	return op, nil
}

func (r *auditLog) ListByClient(ctx context.Context, clientID string) ([]model.Operation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Operation{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ops []model.Operation
	if err := query.Order("created_at DESC").Find(&ops).Error; err != nil {
		return nil, 0, err
	}
	return ops, total, nil
}
