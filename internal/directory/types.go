package directory

import "time"

// DefaultTimeout bounds every directory call.
const DefaultTimeout = 10 * time.Second

// FilterCriteria narrows a token listing. Fields the directory cannot
// filter server-side are applied locally by the lifecycle manager after
// normalization.
type FilterCriteria struct {
	Value           string     `json:"token_value,omitempty"`
	Status          string     `json:"token_status,omitempty"`
	AssuranceMethod string     `json:"token_assurance_method,omitempty"`
	ExpirationMonth string     `json:"expiration_month,omitempty"`
	ExpirationYear  string     `json:"expiration_year,omitempty"`
	CreatedFrom     *time.Time `json:"start_date,omitempty"`
	CreatedTo       *time.Time `json:"end_date,omitempty"`
	IncludeDeleted  bool       `json:"include_deleted,omitempty"`
}

// TransitionCall is the wire shape shared by all four transition
// endpoints; only the endpoint path and the reason vocabulary differ
// between actions.
type TransitionCall struct {
	TokenReferenceID string `json:"tokenReferenceID"`
	TokenRequestorID string `json:"tokenRequestorID"`
	OperatorID       string `json:"operatorId"`
	ReasonCode       string `json:"reasonCode"`
	Note             string `json:"note,omitempty"`
	CorrelationID    string `json:"correlationId"`
}

// TransitionResult is the directory's acknowledgement of a transition
// request. The reported status is advisory: the authority of record may
// acknowledge a change and still not persist it, which is why
// reconciliation always refetches.
type TransitionResult struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// detailRequest addresses a single token by internal id.
type detailRequest struct {
	TokenID string `json:"token_id"`
}

// listEnvelope tolerates the three list response shapes the directory has
// been observed to return: a bare array, {"tokens": [...]} and
// {"results": [...]}.
type listEnvelope struct {
	Tokens  []map[string]any `json:"tokens"`
	Results []map[string]any `json:"results"`
}
