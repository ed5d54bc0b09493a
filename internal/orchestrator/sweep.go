package orchestrator

import (
	"context"
	"time"

	"go_vpnadmin/internal/model"
)

// DeactivateExpired blocks every active client whose subscription expiry has
// passed, walking each one through the same disable path as an explicit
// block. One client's failure is recorded in the audit trail and does not
// abort the sweep for the rest. Returns the number of clients actually
// deactivated, which makes a rerun after a partial failure report only the
// newly affected ones.
func (s *Service) DeactivateExpired(ctx context.Context) (int, error) {
	expired, err := s.store.Clients().ListExpiredActive(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range expired {
		client := &expired[i]
		payload := map[string]any{"expired_at": client.ExpiresAt.Format(time.RFC3339)}

		if client.RemoteUUID != "" {
			if _, err := s.gw.Disable(ctx, client.RemoteUUID); err != nil {
				s.auditFailPayload(ctx, client.ID, payload, err)
				continue
			}
		}

		client.Status = model.ClientStatusBlocked
		err := s.store.Transact(ctx, func(tx Store) error {
			if err := tx.Clients().Update(ctx, client); err != nil {
				return err
			}
			_, err := tx.Audit().Append(ctx, client.ID, model.ActionAutoDeactivate,
				payload, model.OperationSuccess, "")
			return err
		})
		if err != nil {
			s.auditFailPayload(ctx, client.ID, payload, err)
			continue
		}
		count++
	}

	return count, nil
}

func (s *Service) auditFailPayload(ctx context.Context, clientID string, payload map[string]any, cause error) {
	_, _ = s.store.Audit().Append(ctx, clientID, model.ActionAutoDeactivate,
		payload, model.OperationFail, cause.Error())
}
