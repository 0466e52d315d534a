// Package tokenlife provides a minimal public API for embedding the token
// lifecycle manager in other Go programs.
//
// It exports only the essential types: the canonical token record, the
// lifecycle vocabulary and the manager itself. Programs needing the full
// surface (normalization, the directory wire client, the admin server)
// should be built as commands in this repository instead.
package tokenlife

import (
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/directory"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// Core types for working with tokens
type (
	Token         = token.Token
	Status        = token.Status
	Action        = token.Action
	PendingChange = token.PendingChange
	ErrorKind     = token.ErrorKind
)

// Status constants
const (
	StatusInactive    = token.StatusInactive
	StatusActive      = token.StatusActive
	StatusSuspended   = token.StatusSuspended
	StatusDeactivated = token.StatusDeactivated
)

// Action constants
const (
	ActionActivate   = token.ActionActivate
	ActionSuspend    = token.ActionSuspend
	ActionResume     = token.ActionResume
	ActionDeactivate = token.ActionDeactivate
)

// Manager coordinates token state against the Token Directory Service.
type Manager = lifecycle.Manager

// ListOptions narrows a Manager listing.
type ListOptions = lifecycle.ListOptions

// Option configures a Manager.
type Option = lifecycle.Option

// Kind classifies an error from this module into its stable ErrorKind.
func Kind(err error) ErrorKind { return token.Kind(err) }

// NewManager builds a lifecycle manager talking to the directory at
// baseURL.
func NewManager(baseURL string, opts ...Option) *Manager {
	return lifecycle.New(directory.NewClient(baseURL), opts...)
}

// Re-exported Manager options.
var (
	WithLogger     = lifecycle.WithLogger
	WithOperatorID = lifecycle.WithOperatorID
	WithMetrics    = lifecycle.WithMetrics
)
