package token

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable failure class exposed on the outbound contract.
// Callers are expected to display the specific kind, not a generic failure.
type ErrorKind string

const (
	KindInvalidTransition          ErrorKind = "invalid_transition"
	KindInvalidReason              ErrorKind = "invalid_reason"
	KindMissingExternalIdentifiers ErrorKind = "missing_external_identifiers"
	KindExternalCommunication      ErrorKind = "external_communication"
	KindNotFound                   ErrorKind = "not_found"
	KindInternal                   ErrorKind = "internal"
)

// InvalidTransitionError reports an action that is illegal from the token's
// current status. It is recovered locally and never reaches the network.
type InvalidTransitionError struct {
	InternalID string
	From       Status
	Action     Action
}

func (e *InvalidTransitionError) Error() string {
	if e.From.Terminal() {
		return fmt.Sprintf("token %s is %s and cannot transition", e.InternalID, e.From.Display())
	}
	return fmt.Sprintf("action %q is not legal for token %s in status %s", e.Action, e.InternalID, e.From.Display())
}

// InvalidReasonError reports a reason code outside the action's vocabulary.
type InvalidReasonError struct {
	Action Action
	Reason string
}

func (e *InvalidReasonError) Error() string {
	return fmt.Sprintf("reason %q is not valid for action %q", e.Reason, e.Action)
}

// MissingExternalIdentifiersError signals that the loaded record lacks the
// identifiers the directory requires to address the token. The caller must
// refetch before retrying.
type MissingExternalIdentifiersError struct {
	InternalID string
}

func (e *MissingExternalIdentifiersError) Error() string {
	return fmt.Sprintf("token %s has no external reference/requestor identifiers; refetch before retrying", e.InternalID)
}

// NotFoundError reports a token the directory does not know about.
type NotFoundError struct {
	InternalID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("token %s not found in directory", e.InternalID)
}

// ExternalCommunicationError wraps a network, timeout or non-2xx failure
// from the Token Directory Service. It never clears a pending change; a
// later refresh resolves the token's state.
type ExternalCommunicationError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ExternalCommunicationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("directory %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("directory %s failed: %v", e.Op, e.Err)
}

func (e *ExternalCommunicationError) Unwrap() error { return e.Err }

// Kind classifies an error from this subsystem into its ErrorKind.
// Unrecognized errors classify as KindInternal; nil returns "".
func Kind(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var (
		transition *InvalidTransitionError
		reason     *InvalidReasonError
		missing    *MissingExternalIdentifiersError
		notFound   *NotFoundError
		external   *ExternalCommunicationError
	)
	switch {
	case errors.As(err, &transition):
		return KindInvalidTransition
	case errors.As(err, &reason):
		return KindInvalidReason
	case errors.As(err, &missing):
		return KindMissingExternalIdentifiers
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &external):
		return KindExternalCommunication
	}
	return KindInternal
}
