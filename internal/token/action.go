package token

// Action is an operator-initiated lifecycle transition. Each action is
// submitted to its own directory endpoint and carries its own closed
// reason-code vocabulary.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionSuspend    Action = "suspend"
	ActionResume     Action = "resume"
	ActionDeactivate Action = "deactivate"
)

// AllActions lists every defined action.
func AllActions() []Action {
	return []Action{ActionActivate, ActionSuspend, ActionResume, ActionDeactivate}
}

// IsValid checks if the action is one of the defined values.
func (a Action) IsValid() bool {
	switch a {
	case ActionActivate, ActionSuspend, ActionResume, ActionDeactivate:
		return true
	}
	return false
}

// Target returns the status the directory reports once the action has been
// persisted. Resume targets Active: both MDES and VTS report resumed tokens
// as ACTIVE on the next read, so reconciliation enforces Active rather than
// a distinct resumed state.
func (a Action) Target() Status {
	switch a {
	case ActionActivate, ActionResume:
		return StatusActive
	case ActionSuspend:
		return StatusSuspended
	case ActionDeactivate:
		return StatusDeactivated
	}
	return StatusInactive
}

// transitions defines the legal actions out of each status. Deactivated is
// terminal and deliberately absent.
var transitions = map[Status][]Action{
	StatusInactive:  {ActionActivate, ActionDeactivate},
	StatusActive:    {ActionSuspend, ActionDeactivate},
	StatusSuspended: {ActionResume, ActionDeactivate},
}

// AllowedActions returns the legal actions from the given status, in a
// stable order. Terminal statuses return nil.
func AllowedActions(from Status) []Action {
	actions := transitions[from]
	if len(actions) == 0 {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// CanTransition reports whether action is legal from the given status.
func CanTransition(from Status, action Action) bool {
	for _, a := range transitions[from] {
		if a == action {
			return true
		}
	}
	return false
}

// reasonsByAction holds the closed reason-code vocabulary for each action.
// Submitting a reason outside the action's list fails before any request
// is built.
var reasonsByAction = map[Action][]string{
	ActionActivate: {
		"Account reopened",
		"New device provisioned",
		"Customer request",
		"Other",
	},
	ActionSuspend: {
		"Card lost",
		"Card stolen",
		"Fraudulent use",
		"Account closed",
		"Customer request",
		"Other",
	},
	ActionResume: {
		"Card found",
		"Fraud cleared",
		"Customer request",
		"Other",
	},
	ActionDeactivate: {
		"Card lost",
		"Card stolen",
		"Fraudulent use",
		"Account closed",
		"Card expired",
		"Other",
	},
}

// Reasons returns the allowed reason codes for an action, in display order.
func Reasons(action Action) []string {
	reasons := reasonsByAction[action]
	out := make([]string, len(reasons))
	copy(out, reasons)
	return out
}

// ValidReason reports whether reason belongs to the action's vocabulary.
func ValidReason(action Action, reason string) bool {
	for _, r := range reasonsByAction[action] {
		if r == reason {
			return true
		}
	}
	return false
}
