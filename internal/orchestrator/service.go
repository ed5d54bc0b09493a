package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go_vpnadmin/internal/model"
)

// Service drives every client lifecycle transition across the local record
// store and the remote panel. Each operation follows the same template:
// load, validate, mutate remote, mutate local, audit. The service is the sole
// writer of client state and of audit entries.
type Service struct {
	store Store
	gw    Gateway
	now   func() time.Time
}

// NewService creates the orchestrator over a store and a panel gateway.
// The gateway is expected to be a single long-lived instance shared across
// the process.
func NewService(store Store, gw Gateway) *Service {
	return &Service{
		store: store,
		gw:    gw,
		now:   time.Now,
	}
}

// ConfigResult is the read-through result of GetConfig. Nothing in it is
// persisted locally.
type ConfigResult struct {
	ClientID        string `json:"clientId"`
	ShortUUID       string `json:"shortUuid"`
	SubscriptionURL string `json:"subscriptionUrl"`
	ConfigData      string `json:"configData"`
}

// Create provisions a new client: remote identity first, then the local row
// plus its create audit entry in one transaction. A panel failure leaves no
// local trace; there is no client id yet to attach an audit entry to.
func (s *Service) Create(ctx context.Context, username string, days int) (*model.Client, error) {
	existing, err := s.store.Clients().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	expiresAt := s.now().UTC().Add(time.Duration(days) * 24 * time.Hour)

	identity, err := s.gw.CreateIdentity(ctx, username, expiresAt)
	if err != nil {
		return nil, remoteErr("create", err)
	}

	client := &model.Client{
		ID:              uuid.NewString(),
		Username:        username,
		RemoteUUID:      identity.RemoteUUID,
		ShortUUID:       identity.ShortUUID,
		SubscriptionURL: identity.SubscriptionURL,
		Status:          model.ClientStatusActive,
		ExpiresAt:       expiresAt,
	}

	err = s.store.Transact(ctx, func(tx Store) error {
		if err := tx.Clients().Insert(ctx, client); err != nil {
			return err
		}
		_, err := tx.Audit().Append(ctx, client.ID, model.ActionCreate,
			map[string]any{"username": username, "days": days},
			model.OperationSuccess, "")
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			// Lost a username race; the insert constraint is the final
			// authority.
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return client, nil
}

// Get returns a client by id
func (s *Service) Get(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := s.store.Clients().GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return client, nil
}

// List returns clients matching the filter, newest first, with the total count
func (s *Service) List(ctx context.Context, filter ClientFilter) ([]model.Client, int64, error) {
	return s.store.Clients().List(ctx, filter)
}

// Delete removes the client locally and remotely. The delete audit entry is
// written before the row is removed so its client reference is valid at write
// time; removing the client then takes the entry (and all older ones) with it.
// If the panel rejects the delete the client row is kept untouched for retry.
func (s *Service) Delete(ctx context.Context, clientID string) error {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}

	if client.RemoteUUID != "" {
		if err := s.gw.DeleteIdentity(ctx, client.RemoteUUID); err != nil {
			s.auditFail(ctx, client.ID, model.ActionDelete, nil, err)
			return remoteErr("delete", err)
		}
	}

	return s.store.Transact(ctx, func(tx Store) error {
		if _, err := tx.Audit().Append(ctx, client.ID, model.ActionDelete, nil, model.OperationSuccess, ""); err != nil {
			return err
		}
		return tx.Clients().Delete(ctx, client)
	})
}

// Extend pushes the expiry out by the given number of days. An already
// expired subscription restarts from now instead of the stale expiry.
func (s *Service) Extend(ctx context.Context, clientID string, days int) (*model.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	base := client.ExpiresAt
	if now := s.now().UTC(); base.Before(now) {
		base = now
	}
	newExpiresAt := base.Add(time.Duration(days) * 24 * time.Hour)

	if client.RemoteUUID != "" {
		if _, err := s.gw.SetExpiry(ctx, client.RemoteUUID, newExpiresAt); err != nil {
			s.auditFail(ctx, client.ID, model.ActionExtend, map[string]any{"days": days}, err)
			return nil, remoteErr("extend", err)
		}
	}

	client.ExpiresAt = newExpiresAt
	err = s.store.Transact(ctx, func(tx Store) error {
		if err := tx.Clients().Update(ctx, client); err != nil {
			return err
		}
		_, err := tx.Audit().Append(ctx, client.ID, model.ActionExtend,
			map[string]any{"days": days, "new_expires_at": newExpiresAt.Format(time.RFC3339)},
			model.OperationSuccess, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Block disables the client's VPN access
func (s *Service) Block(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Status == model.ClientStatusBlocked {
		return nil, ErrAlreadyBlocked
	}
	return s.setStatus(ctx, client, model.ClientStatusBlocked, model.ActionBlock)
}

// Unblock re-enables the client's VPN access
func (s *Service) Unblock(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Status != model.ClientStatusBlocked {
		return nil, ErrNotBlocked
	}
	return s.setStatus(ctx, client, model.ClientStatusActive, model.ActionUnblock)
}

// setStatus carries the shared remote-then-local half of Block and Unblock.
// Status validation has already happened by the time it is called.
func (s *Service) setStatus(ctx context.Context, client *model.Client, status model.ClientStatus, action model.ActionType) (*model.Client, error) {
	if client.RemoteUUID != "" {
		var err error
		if status == model.ClientStatusBlocked {
			_, err = s.gw.Disable(ctx, client.RemoteUUID)
		} else {
			_, err = s.gw.Enable(ctx, client.RemoteUUID)
		}
		if err != nil {
			s.auditFail(ctx, client.ID, action, nil, err)
			return nil, remoteErr(string(action), err)
		}
	}

	client.Status = status
	err := s.store.Transact(ctx, func(tx Store) error {
		if err := tx.Clients().Update(ctx, client); err != nil {
			return err
		}
		_, err := tx.Audit().Append(ctx, client.ID, action, nil, model.OperationSuccess, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// GetConfig fetches the client's connection profile from the panel. This is a
// read-through: nothing is cached or persisted locally.
func (s *Service) GetConfig(ctx context.Context, clientID string) (*ConfigResult, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.ShortUUID == "" {
		return nil, ErrConfigUnavailable
	}

	configData, err := s.gw.FetchProfile(ctx, client.ShortUUID)
	if err != nil {
		s.auditFail(ctx, client.ID, model.ActionGetConfig, nil, err)
		return nil, remoteErr("get config", err)
	}

	if _, err := s.store.Audit().Append(ctx, client.ID, model.ActionGetConfig, nil, model.OperationSuccess, ""); err != nil {
		return nil, err
	}

	return &ConfigResult{
		ClientID:        client.ID,
		ShortUUID:       client.ShortUUID,
		SubscriptionURL: client.SubscriptionURL,
		ConfigData:      configData,
	}, nil
}

// RotateConfig revokes the current subscription on the panel, invalidating the
// old connection URL, and stores the replacement references wholesale.
func (s *Service) RotateConfig(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.RemoteUUID == "" {
		return nil, ErrConfigUnavailable
	}

	identity, err := s.gw.RotateProfile(ctx, client.RemoteUUID)
	if err != nil {
		s.auditFail(ctx, client.ID, model.ActionRotateConfig, nil, err)
		return nil, remoteErr("rotate config", err)
	}

	client.ShortUUID = identity.ShortUUID
	client.SubscriptionURL = identity.SubscriptionURL
	err = s.store.Transact(ctx, func(tx Store) error {
		if err := tx.Clients().Update(ctx, client); err != nil {
			return err
		}
		_, err := tx.Audit().Append(ctx, client.ID, model.ActionRotateConfig,
			map[string]any{"new_short_uuid": identity.ShortUUID},
			model.OperationSuccess, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Operations returns the audit trail for a client, newest first
func (s *Service) Operations(ctx context.Context, clientID string) ([]model.Operation, int64, error) {
	return s.store.Audit().ListByClient(ctx, clientID)
}

// auditFail records a failed remote call through the root store handle, so
// the entry is committed independently of any surrounding transaction.
func (s *Service) auditFail(ctx context.Context, clientID string, action model.ActionType, payload map[string]any, cause error) {
	_, _ = s.store.Audit().Append(ctx, clientID, action, payload, model.OperationFail, cause.Error())
}
