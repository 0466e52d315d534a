// Package pending tracks optimistic, not-yet-confirmed transition requests.
//
// The tracker is an explicit, injectable store keyed by internal token id,
// passed to the lifecycle manager rather than held as ambient global state.
// It guarantees at most one live pending change per token: a newer request
// replaces the older entry.
package pending

import (
	"sync"
	"time"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// Tracker is a process-local store of pending changes. Safe for concurrent
// use.
type Tracker struct {
	mu   sync.RWMutex
	byID map[string]token.PendingChange
	now  func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID: make(map[string]token.PendingChange),
		now:  time.Now,
	}
}

// Mark records a pending change for the token, replacing any prior entry.
// Returns the recorded change.
func (t *Tracker) Mark(internalID string, action token.Action, requested token.Status, correlationID string) token.PendingChange {
	t.mu.Lock()
	defer t.mu.Unlock()
	pc := token.PendingChange{
		InternalID:      internalID,
		Action:          action,
		RequestedStatus: requested,
		RequestedAt:     t.now().UTC(),
		CorrelationID:   correlationID,
	}
	t.byID[internalID] = pc
	return pc
}

// Get returns the pending change for the token, if any.
func (t *Tracker) Get(internalID string) (token.PendingChange, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pc, ok := t.byID[internalID]
	return pc, ok
}

// Has reports whether the token has a live pending change.
func (t *Tracker) Has(internalID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byID[internalID]
	return ok
}

// ActionLabel returns the pending action's name, or ok=false when nothing
// is pending. Exposed for rendering collaborators.
func (t *Tracker) ActionLabel(internalID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pc, ok := t.byID[internalID]
	if !ok {
		return "", false
	}
	return string(pc.Action), true
}

// Clear removes the token's pending change, reporting whether one existed.
// Used when reconciliation confirms the requested status, when an operator
// cancels, or when a terminal failure is confirmed.
func (t *Tracker) Clear(internalID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.byID[internalID]
	delete(t.byID, internalID)
	return ok
}

// Len returns the number of live pending changes.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
