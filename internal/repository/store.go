package repository

import (
	"context"

	"gorm.io/gorm"

	"go_vpnadmin/internal/orchestrator"
)

// Store implements orchestrator.Store on top of gorm/MySQL
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over a database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Clients returns the client record store bound to this handle
func (s *Store) Clients() orchestrator.ClientStore {
	return &clientStore{db: s.db}
}

// Audit returns the audit log bound to this handle
func (s *Store) Audit() orchestrator.AuditLog {
	return &auditLog{db: s.db}
}

// Transact runs fn inside one database transaction. The handles seen by fn
// are scoped to that transaction; they commit or roll back together on every
// exit path.
func (s *Store) Transact(ctx context.Context, fn func(tx orchestrator.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
