package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"

	"go_vpnadmin/internal/model"
)

// fakeStore is an in-memory Store. Transact runs the callback against the
// same backing maps, which is enough for single-threaded tests.
type fakeStore struct {
	clients     map[string]*model.Client
	ops         []model.Operation
	seq         int
	dupOnInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{clients: map[string]*model.Client{}}
}

func (f *fakeStore) Clients() ClientStore { return f }
func (f *fakeStore) Audit() AuditLog      { return f }

func (f *fakeStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	return fn(f)
}

func (f *fakeStore) Insert(ctx context.Context, client *model.Client) error {
	if f.dupOnInsert {
		return fmt.Errorf("insert: %w", ErrDuplicateKey)
	}
	for _, c := range f.clients {
		if c.Username == client.Username {
			return fmt.Errorf("insert: %w", ErrDuplicateKey)
		}
	}
	f.seq++
	client.CreatedAt = time.Unix(int64(f.seq), 0)
	cp := *client
	f.clients[client.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*model.Client, error) {
	for _, c := range f.clients {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(ctx context.Context, filter ClientFilter) ([]model.Client, int64, error) {
	now := time.Now().UTC()
	var out []model.Client
	for _, c := range f.clients {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Expired != nil {
			expired := c.ExpiresAt.Before(now)
			if expired != *filter.Expired {
				continue
			}
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, int64(len(out)), nil
}

func (f *fakeStore) Update(ctx context.Context, client *model.Client) error {
	cp := *client
	f.clients[client.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, client *model.Client) error {
	kept := f.ops[:0]
	for _, op := range f.ops {
		if op.ClientID != client.ID {
			kept = append(kept, op)
		}
	}
	f.ops = kept
	delete(f.clients, client.ID)
	return nil
}

func (f *fakeStore) ListExpiredActive(ctx context.Context) ([]model.Client, error) {
	now := time.Now().UTC()
	var out []model.Client
	for _, c := range f.clients {
		if c.Status == model.ClientStatusActive && c.ExpiresAt.Before(now) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) Append(ctx context.Context, clientID string, action model.ActionType, payload map[string]any, result model.OperationResult, errText string) (*model.Operation, error) {
	f.seq++
	op := model.Operation{
		ID:        fmt.Sprintf("op-%d", f.seq),
		ClientID:  clientID,
		Action:    action,
		Result:    result,
		Error:     errText,
		CreatedAt: time.Unix(int64(f.seq), 0),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		op.Payload = datatypes.JSON(raw)
	}
	f.ops = append(f.ops, op)
	return &op, nil
}

func (f *fakeStore) ListByClient(ctx context.Context, clientID string) ([]model.Operation, int64, error) {
	var out []model.Operation
	for i := len(f.ops) - 1; i >= 0; i-- {
		if f.ops[i].ClientID == clientID {
			out = append(out, f.ops[i])
		}
	}
	return out, int64(len(out)), nil
}

// opsFor returns the audit entries for a client in append order
func (f *fakeStore) opsFor(clientID string) []model.Operation {
	var out []model.Operation
	for _, op := range f.ops {
		if op.ClientID == clientID {
			out = append(out, op)
		}
	}
	return out
}

// fakeGateway records every call and fails where told to
type fakeGateway struct {
	calls []string

	createErr  error
	deleteErr  error
	disableErr map[string]error
	enableErr  error
	expiryErr  error
	fetchErr   error
	rotateErr  error

	profile string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{disableErr: map[string]error{}, profile: "dmFsaWQgY29uZmln"}
}

func (g *fakeGateway) CreateIdentity(ctx context.Context, username string, expiresAt time.Time) (*RemoteIdentity, error) {
	g.calls = append(g.calls, "create:"+username)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &RemoteIdentity{
		RemoteUUID:      "rw-" + username,
		ShortUUID:       "short-" + username,
		SubscriptionURL: "https://panel.example.com/sub/short-" + username,
		Status:          "ACTIVE",
	}, nil
}

func (g *fakeGateway) DeleteIdentity(ctx context.Context, remoteUUID string) error {
	g.calls = append(g.calls, "delete:"+remoteUUID)
	return g.deleteErr
}

func (g *fakeGateway) Disable(ctx context.Context, remoteUUID string) (*RemoteIdentity, error) {
	g.calls = append(g.calls, "disable:"+remoteUUID)
	if err := g.disableErr[remoteUUID]; err != nil {
		return nil, err
	}
	return &RemoteIdentity{RemoteUUID: remoteUUID, Status: "DISABLED"}, nil
}

func (g *fakeGateway) Enable(ctx context.Context, remoteUUID string) (*RemoteIdentity, error) {
	g.calls = append(g.calls, "enable:"+remoteUUID)
	if g.enableErr != nil {
		return nil, g.enableErr
	}
	return &RemoteIdentity{RemoteUUID: remoteUUID, Status: "ACTIVE"}, nil
}

func (g *fakeGateway) SetExpiry(ctx context.Context, remoteUUID string, expiresAt time.Time) (*RemoteIdentity, error) {
	g.calls = append(g.calls, "expiry:"+remoteUUID)
	if g.expiryErr != nil {
		return nil, g.expiryErr
	}
	return &RemoteIdentity{RemoteUUID: remoteUUID, Status: "ACTIVE"}, nil
}

func (g *fakeGateway) FetchProfile(ctx context.Context, shortUUID string) (string, error) {
	g.calls = append(g.calls, "fetch:"+shortUUID)
	if g.fetchErr != nil {
		return "", g.fetchErr
	}
	return g.profile, nil
}

func (g *fakeGateway) RotateProfile(ctx context.Context, remoteUUID string) (*RemoteIdentity, error) {
	g.calls = append(g.calls, "rotate:"+remoteUUID)
	if g.rotateErr != nil {
		return nil, g.rotateErr
	}
	return &RemoteIdentity{
		RemoteUUID:      remoteUUID,
		ShortUUID:       "short-rotated",
		SubscriptionURL: "https://panel.example.com/sub/short-rotated",
		Status:          "ACTIVE",
	}, nil
}

func newTestService() (*Service, *fakeStore, *fakeGateway) {
	store := newFakeStore()
	gw := newFakeGateway()
	return NewService(store, gw), store, gw
}
