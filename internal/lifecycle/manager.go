// Package lifecycle coordinates token state: it loads records from the
// Token Directory Service, normalizes them into canonical form, validates
// and dispatches operator transitions, and reconciles local state against
// the directory afterwards.
//
// The manager is the only component that mutates cached records. Callers
// always receive clones with any pending change overlaid, so a token whose
// transition is awaiting confirmation presents its requested status.
package lifecycle

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/directory"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/normalize"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/pending"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/telemetry"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// detailFetchLimit bounds concurrent detail requests during list
// enrichment so a large listing cannot stampede the directory.
const detailFetchLimit = 10

// Directory is the manager's view of the external authority of record.
// *directory.Client satisfies it; tests substitute a local double.
type Directory interface {
	ListTokens(ctx context.Context, filter directory.FilterCriteria) ([]map[string]any, error)
	GetTokenDetail(ctx context.Context, internalID string) (map[string]any, error)
	RequestTransition(ctx context.Context, action token.Action, call directory.TransitionCall) (*directory.TransitionResult, error)
}

// ListOptions narrows a listing. Filter is pushed to the directory; the
// remaining criteria are applied locally after normalization because the
// directory cannot evaluate them server-side.
type ListOptions struct {
	Filter directory.FilterCriteria

	// TSP keeps only tokens provisioned through the named service
	// provider (exact match, case-insensitive).
	TSP string
	// Requestor keeps tokens whose requestor name contains the term.
	Requestor string
	// Search matches case-insensitively against the token value, the
	// requestor name and the device name.
	Search string

	// EnrichDetails fetches each listed token's detail record, since
	// listings omit device linkage and risk scoring. Applied only when the
	// listing is small enough to enrich without hammering the directory.
	EnrichDetails bool
}

// Manager owns the token cache and the transition workflow. Safe for
// concurrent use.
type Manager struct {
	dir        Directory
	pending    *pending.Tracker
	log        *slog.Logger
	metrics    *telemetry.LifecycleMetrics
	operatorID string

	mu      sync.RWMutex
	records map[string]*token.Token
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithMetrics attaches lifecycle counters. Without it the manager records
// nothing.
func WithMetrics(metrics *telemetry.LifecycleMetrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// WithPendingTracker substitutes the pending-change store.
func WithPendingTracker(tracker *pending.Tracker) Option {
	return func(m *Manager) { m.pending = tracker }
}

// WithOperatorID sets the operator identity stamped on every transition.
func WithOperatorID(id string) Option {
	return func(m *Manager) { m.operatorID = id }
}

// New creates a manager backed by the given directory.
func New(dir Directory, opts ...Option) *Manager {
	m := &Manager{
		dir:     dir,
		pending: pending.NewTracker(),
		log:     slog.Default(),
		records: make(map[string]*token.Token),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetToken fetches one token's detail record, normalizes it and caches the
// result. The returned clone carries any pending change overlaid.
func (m *Manager) GetToken(ctx context.Context, internalID string) (*token.Token, error) {
	raw, err := m.dir.GetTokenDetail(ctx, internalID)
	if err != nil {
		return nil, err
	}
	tok := m.normalizeAndStore(ctx, raw)
	if tok.InternalID == "" {
		return nil, &token.NotFoundError{InternalID: internalID}
	}
	m.settle(ctx, tok)
	return m.overlay(tok), nil
}

// ListTokens fetches tokens matching the options, normalizes each payload,
// optionally enriches them with detail records, applies the local filters
// and refreshes the cache. Returned clones carry pending overlays.
func (m *Manager) ListTokens(ctx context.Context, opts ListOptions) ([]*token.Token, error) {
	raws, err := m.dir.ListTokens(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	tokens := make([]*token.Token, 0, len(raws))
	for _, raw := range raws {
		tok := m.normalizeAndStore(ctx, raw)
		if tok.InternalID == "" {
			continue
		}
		tokens = append(tokens, tok)
	}

	// Enrichment only pays off on small pages; large listings keep their
	// summary rows rather than stampede the detail endpoint.
	if opts.EnrichDetails && len(tokens) <= detailFetchLimit {
		if err := m.enrichDetails(ctx, tokens); err != nil {
			return nil, err
		}
	}

	out := make([]*token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !matchesLocal(tok, opts) {
			continue
		}
		out = append(out, m.overlay(tok))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InternalID < out[j].InternalID })
	return out, nil
}

// enrichDetails replaces each listed record with its full detail record.
// Fetches run concurrently but bounded; a token the directory no longer
// knows keeps its listing-level record rather than failing the batch.
func (m *Manager) enrichDetails(ctx context.Context, tokens []*token.Token) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)
	for i, tok := range tokens {
		i, tok := i, tok
		g.Go(func() error {
			raw, err := m.dir.GetTokenDetail(ctx, tok.InternalID)
			if err != nil {
				if token.Kind(err) == token.KindNotFound {
					return nil
				}
				return err
			}
			full := m.normalizeAndStore(ctx, raw)
			if full.InternalID != "" {
				tokens[i] = full
			}
			return nil
		})
	}
	return g.Wait()
}

// RequestTransition validates and dispatches one lifecycle action.
//
// Legality is judged against the token's effective status, pending overlay
// included, so an operator cannot stack a second action on an unconfirmed
// one unless it is legal from the requested state. Validation failures
// return before any network call. A communication failure leaves the
// pending change in place: the directory may have acted, and only a later
// refresh can settle it.
func (m *Manager) RequestTransition(ctx context.Context, internalID string, action token.Action, reason, note string) (*token.Token, error) {
	tok, err := m.load(ctx, internalID)
	if err != nil {
		return nil, err
	}

	effective := tok.Status
	if pc, ok := m.pending.Get(internalID); ok {
		effective = pc.RequestedStatus
	}

	req, err := buildRequest(tok, effective, action, reason, note, m.operatorID)
	if err != nil {
		m.metrics.TransitionDenied(ctx, string(action), string(token.Kind(err)))
		return nil, err
	}

	pc := m.pending.Mark(internalID, action, action.Target(), req.CorrelationID)
	m.metrics.TransitionRequested(ctx, string(action))
	m.log.Info("transition dispatched",
		"token", internalID,
		"action", action,
		"reason", reason,
		"requested_status", pc.RequestedStatus,
		"correlation_id", req.CorrelationID)

	_, err = m.dir.RequestTransition(ctx, action, directory.TransitionCall{
		TokenReferenceID: req.ExternalReferenceID,
		TokenRequestorID: req.ExternalRequestorID,
		OperatorID:       req.OperatorID,
		ReasonCode:       req.ReasonCode,
		Note:             req.Note,
		CorrelationID:    req.CorrelationID,
	})
	if err != nil {
		// The request may still have been applied. The pending change
		// stays live until a refresh observes the real outcome.
		m.log.Warn("transition submission failed; pending change retained",
			"token", internalID,
			"action", action,
			"correlation_id", req.CorrelationID,
			"error", err)
		return nil, err
	}

	return m.reconcile(ctx, internalID, pc)
}

// Refresh refetches one token and settles any pending change against the
// fresh state: confirmed changes clear, unconfirmed ones stay live.
func (m *Manager) Refresh(ctx context.Context, internalID string) (*token.Token, error) {
	raw, err := m.dir.GetTokenDetail(ctx, internalID)
	if err != nil {
		return nil, err
	}
	tok := m.normalizeAndStore(ctx, raw)
	if tok.InternalID == "" {
		return nil, &token.NotFoundError{InternalID: internalID}
	}
	m.settle(ctx, tok)
	return m.overlay(tok), nil
}

// settle reconciles a freshly fetched record against any live pending
// change. A fetch reporting the requested status confirms the change and
// clears it; anything else keeps it live and surfaces the drift through
// the log and the drift counter so staleness stays diagnosable.
func (m *Manager) settle(ctx context.Context, tok *token.Token) {
	pc, ok := m.pending.Get(tok.InternalID)
	if !ok {
		return
	}
	if tok.Status == pc.RequestedStatus {
		m.pending.Clear(tok.InternalID)
		m.log.Info("pending change confirmed",
			"token", tok.InternalID,
			"action", pc.Action,
			"status", tok.Status,
			"correlation_id", pc.CorrelationID)
		return
	}
	m.metrics.StatusDriftForced(ctx, string(pc.RequestedStatus))
	m.log.Warn("directory read lags pending change; presenting requested status",
		"token", tok.InternalID,
		"action", pc.Action,
		"reported_status", tok.Status,
		"requested_status", pc.RequestedStatus,
		"correlation_id", pc.CorrelationID)
}

// HasPendingChange reports whether the token has an unconfirmed transition.
func (m *Manager) HasPendingChange(internalID string) bool {
	return m.pending.Has(internalID)
}

// PendingChange returns the token's unconfirmed transition, if any.
func (m *Manager) PendingChange(internalID string) (token.PendingChange, bool) {
	return m.pending.Get(internalID)
}

// PendingActionLabel returns the name of the token's pending action for
// rendering, or ok=false when nothing is pending.
func (m *Manager) PendingActionLabel(internalID string) (string, bool) {
	return m.pending.ActionLabel(internalID)
}

// CancelPending discards the token's pending change without contacting the
// directory. The next read presents directory state unmodified.
func (m *Manager) CancelPending(internalID string) bool {
	cleared := m.pending.Clear(internalID)
	if cleared {
		m.log.Info("pending change cancelled", "token", internalID)
	}
	return cleared
}

// AllowedActions returns the legal actions for the token's effective
// status.
func (m *Manager) AllowedActions(internalID string) []token.Action {
	m.mu.RLock()
	tok, ok := m.records[internalID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	status := tok.Status
	if pc, live := m.pending.Get(internalID); live {
		status = pc.RequestedStatus
	}
	return token.AllowedActions(status)
}

// load returns the cached record, fetching from the directory on a miss.
func (m *Manager) load(ctx context.Context, internalID string) (*token.Token, error) {
	m.mu.RLock()
	tok, ok := m.records[internalID]
	m.mu.RUnlock()
	if ok {
		return tok, nil
	}
	raw, err := m.dir.GetTokenDetail(ctx, internalID)
	if err != nil {
		return nil, err
	}
	tok = m.normalizeAndStore(ctx, raw)
	if tok.InternalID == "" {
		return nil, &token.NotFoundError{InternalID: internalID}
	}
	return tok, nil
}

// normalizeAndStore normalizes one payload, surfaces its warnings and
// caches the record under its internal id.
func (m *Manager) normalizeAndStore(ctx context.Context, raw map[string]any) *token.Token {
	tok, warnings := normalize.Record(raw)
	for _, w := range warnings {
		m.log.Warn("normalization warning", "token", tok.InternalID, "field", w.Field, "detail", w.Message)
		m.metrics.SchemaAmbiguity(ctx, w.Field)
	}
	if tok.InternalID == "" {
		return tok
	}
	m.mu.Lock()
	m.records[tok.InternalID] = tok
	m.mu.Unlock()
	return tok
}

// overlay clones the record and applies its pending change, if any.
func (m *Manager) overlay(tok *token.Token) *token.Token {
	out := tok.Clone()
	if pc, ok := m.pending.Get(tok.InternalID); ok {
		out.SetStatus(pc.RequestedStatus)
	}
	return out
}

// matchesLocal applies the filters the directory cannot evaluate.
func matchesLocal(tok *token.Token, opts ListOptions) bool {
	if opts.TSP != "" && !strings.EqualFold(tok.Attributes.TSP, opts.TSP) {
		return false
	}
	if opts.Requestor != "" && !containsFold(tok.Attributes.TokenRequestorName, opts.Requestor) {
		return false
	}
	if opts.Search != "" {
		if !containsFold(tok.Value, opts.Search) &&
			!containsFold(tok.Attributes.TokenRequestorName, opts.Search) &&
			!containsFold(tok.Attributes.DeviceName, opts.Search) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
