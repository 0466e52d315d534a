package lifecycle

import (
	"github.com/google/uuid"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// buildRequest validates one lifecycle action against the token's
// effective status and assembles the fully-formed outbound request,
// correlation id included. It never touches the network: every failure
// here is a typed validation error raised before anything is dispatched.
func buildRequest(tok *token.Token, effective token.Status, action token.Action, reason, note, operatorID string) (*token.TransitionRequest, error) {
	if !action.IsValid() || !token.CanTransition(effective, action) {
		return nil, &token.InvalidTransitionError{InternalID: tok.InternalID, From: effective, Action: action}
	}
	if !token.ValidReason(action, reason) {
		return nil, &token.InvalidReasonError{Action: action, Reason: reason}
	}
	if !tok.HasExternalIdentifiers() {
		return nil, &token.MissingExternalIdentifiersError{InternalID: tok.InternalID}
	}
	return &token.TransitionRequest{
		Action:              action,
		ReasonCode:          reason,
		Note:                note,
		OperatorID:          operatorID,
		CorrelationID:       uuid.NewString(),
		ExternalReferenceID: tok.ExternalReferenceID,
		ExternalRequestorID: tok.ExternalRequestorID,
	}, nil
}
