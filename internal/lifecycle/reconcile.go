package lifecycle

import (
	"context"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// reconcile refetches the token after an accepted transition and settles
// local state against what the directory reports.
//
// The directory acknowledges writes before its read path observes them, so
// a fresh read may still show the prior status. When that happens the
// requested status is presented as authoritative: the write was accepted,
// the read is stale. The pending change stays live until a later fetch
// reports the requested status or an operator cancels it; each lagging
// read is logged and counted so sustained drift is visible in telemetry
// rather than silent.
func (m *Manager) reconcile(ctx context.Context, internalID string, pc token.PendingChange) (*token.Token, error) {
	raw, err := m.dir.GetTokenDetail(ctx, internalID)
	if err != nil {
		// The transition was accepted; only the confirming read failed.
		// Keep the pending change and present the requested status.
		m.log.Warn("post-transition refetch failed; pending change retained",
			"token", internalID,
			"action", pc.Action,
			"correlation_id", pc.CorrelationID,
			"error", err)
		m.mu.RLock()
		tok, ok := m.records[internalID]
		m.mu.RUnlock()
		if !ok {
			return nil, err
		}
		return m.overlay(tok), nil
	}

	tok := m.normalizeAndStore(ctx, raw)
	if tok.InternalID == "" {
		return nil, &token.NotFoundError{InternalID: internalID}
	}

	m.metrics.Reconciled(ctx, tok.Status == pc.RequestedStatus)
	m.settle(ctx, tok)
	return m.overlay(tok), nil
}
