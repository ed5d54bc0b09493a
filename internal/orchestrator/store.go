package orchestrator

import (
	"context"
	"errors"

	"go_vpnadmin/internal/model"
)

// ErrDuplicateKey is returned by ClientStore.Insert when a uniqueness
// constraint rejects the row. The record store is the final authority on
// username collisions; the pre-insert lookup in Create is only advisory.
var ErrDuplicateKey = errors.New("duplicate key")

// ClientFilter narrows List results. Nil fields mean no filter.
// Expired=true selects clients whose expiry is in the past.
type ClientFilter struct {
	Status  *model.ClientStatus
	Expired *bool
}

// ClientStore is the durable home of the Client aggregate. Lookups return
// (nil, nil) when no row matches.
type ClientStore interface {
	Insert(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByUsername(ctx context.Context, username string) (*model.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]model.Client, int64, error)
	Update(ctx context.Context, client *model.Client) error
	// Delete removes the client and all of its audit entries (operations
	// first, then the client row).
	Delete(ctx context.Context, client *model.Client) error
	ListExpiredActive(ctx context.Context) ([]model.Client, error)
}

// AuditLog is the append-only record of attempted lifecycle operations.
// Entries are never updated; they disappear only when their client is deleted.
type AuditLog interface {
	Append(ctx context.Context, clientID string, action model.ActionType, payload map[string]any, result model.OperationResult, errText string) (*model.Operation, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Operation, int64, error)
}

// Store bundles the record store and the audit log over one database handle.
// Transact runs fn against transaction-scoped handles that commit or roll
// back together on every exit path. Fail audits for rejected remote calls are
// written through the root handles so the evidence survives a rollback.
type Store interface {
	Clients() ClientStore
	Audit() AuditLog
	Transact(ctx context.Context, fn func(tx Store) error) error
}
