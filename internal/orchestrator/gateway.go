package orchestrator

import (
	"context"
	"time"
)

// RemoteIdentity is the panel-side representation of a client returned by
// mutating gateway calls.
type RemoteIdentity struct {
	RemoteUUID      string
	ShortUUID       string
	SubscriptionURL string
	Status          string
}

// Gateway abstracts the remote provisioning panel. Every method is fallible;
// the orchestrator treats all failures uniformly as RemoteUnavailable and
// preserves the error text in the audit trail without interpreting it.
type Gateway interface {
	CreateIdentity(ctx context.Context, username string, expiresAt time.Time) (*RemoteIdentity, error)
	DeleteIdentity(ctx context.Context, remoteUUID string) error
	Disable(ctx context.Context, remoteUUID string) (*RemoteIdentity, error)
	Enable(ctx context.Context, remoteUUID string) (*RemoteIdentity, error)
	SetExpiry(ctx context.Context, remoteUUID string, expiresAt time.Time) (*RemoteIdentity, error)
	FetchProfile(ctx context.Context, shortUUID string) (string, error)
	RotateProfile(ctx context.Context, remoteUUID string) (*RemoteIdentity, error)
}
