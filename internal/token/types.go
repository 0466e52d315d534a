// Package token defines the canonical token record, its lifecycle states,
// the legal transitions between them and the per-action reason vocabularies.
package token

import (
	"encoding/json"
	"time"
)

// Token is the canonical, de-duplicated representation of a tokenized
// payment credential. It merges the directory's two field-naming
// conventions into a single authoritative shape; the coded Status field is
// the sole source of truth for lifecycle state, and every mirrored or
// display field is derived from it.
type Token struct {
	// InternalID is the opaque local identifier, stable across refreshes.
	// It keys every cache and pending-change entry.
	InternalID string

	// ExternalReferenceID and ExternalRequestorID address the token at the
	// directory. Every transition request requires both; the internal id
	// means nothing to the external system.
	ExternalReferenceID string
	ExternalRequestorID string

	Value       string
	Type        string
	TypeDisplay string

	Status        Status
	StatusDisplay string

	AssuranceMethod        AssuranceMethod
	AssuranceMethodDisplay string

	ActivatedAt     *time.Time
	ExpiresAt       *time.Time
	StatusUpdatedAt *time.Time

	// Attributes carries the secondary fields the directory reports.
	// They are read-only from this subsystem's perspective.
	Attributes Attributes
}

// Attributes is the bag of secondary, read-only token fields: credential
// provenance, wallet and device linkage, and network risk scoring.
type Attributes struct {
	TSP                string `json:"tsp,omitempty"`
	TokenRequestorName string `json:"token_requestor_name,omitempty"`
	PANSource          string `json:"pan_source,omitempty"`

	DeviceID     string `json:"device_id,omitempty"`
	DeviceType   string `json:"device_type,omitempty"`
	DeviceName   string `json:"device_name,omitempty"`
	DeviceNumber string `json:"device_number,omitempty"`

	WalletAccountScore  *int   `json:"wallet_account_score,omitempty"`
	WalletDeviceScore   *int   `json:"wallet_device_score,omitempty"`
	WalletReasonCodes   string `json:"wallet_reason_codes,omitempty"`
	NetworkTokenScore   *int   `json:"network_token_score,omitempty"`
	NetworkDecisioning  string `json:"network_decisioning,omitempty"`
	RiskAssessmentScore *int   `json:"risk_assessment_score,omitempty"`

	ExpirationMonth string `json:"expiration_month,omitempty"`
	ExpirationYear  string `json:"expiration_year,omitempty"`

	CreatedAt *time.Time `json:"creation_date,omitempty"`
	Deleted   bool       `json:"is_deleted,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// SetStatus updates the coded status and its display label together.
// This is the only way status may change on a record; it keeps the
// status/display pair consistent by construction.
func (t *Token) SetStatus(s Status) {
	t.Status = s
	t.StatusDisplay = s.Display()
}

// HasExternalIdentifiers reports whether the record carries the
// identifiers required to address the directory.
func (t *Token) HasExternalIdentifiers() bool {
	return t.ExternalReferenceID != "" && t.ExternalRequestorID != ""
}

// Clone returns a deep copy. Collaborators receive clones, never the cached
// record itself.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	out := *t
	out.ActivatedAt = cloneTime(t.ActivatedAt)
	out.ExpiresAt = cloneTime(t.ExpiresAt)
	out.StatusUpdatedAt = cloneTime(t.StatusUpdatedAt)
	out.Attributes.WalletAccountScore = cloneInt(t.Attributes.WalletAccountScore)
	out.Attributes.WalletDeviceScore = cloneInt(t.Attributes.WalletDeviceScore)
	out.Attributes.NetworkTokenScore = cloneInt(t.Attributes.NetworkTokenScore)
	out.Attributes.RiskAssessmentScore = cloneInt(t.Attributes.RiskAssessmentScore)
	out.Attributes.CreatedAt = cloneTime(t.Attributes.CreatedAt)
	out.Attributes.DeletedAt = cloneTime(t.Attributes.DeletedAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// MarshalJSON emits the record under both naming conventions consumed by
// upstream and downstream callers. The camelCase mirrors are derived from
// the canonical snake_case fields at marshal time, so the two spellings of
// any status-bearing field are byte-identical by construction.
func (t *Token) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":                       t.InternalID,
		"token_reference_id":       t.ExternalReferenceID,
		"tokenReferenceID":         t.ExternalReferenceID,
		"token_requestor_id":       t.ExternalRequestorID,
		"tokenRequestorID":         t.ExternalRequestorID,
		"token_value":              t.Value,
		"token_type":               t.Type,
		"type_display":             t.TypeDisplay,
		"token_status":             string(t.Status),
		"tokenStatus":              string(t.Status),
		"status_display":           t.StatusDisplay,
		"statusDisplay":            t.StatusDisplay,
		"token_assurance_method":   string(t.AssuranceMethod),
		"tokenAssuranceMethod":     string(t.AssuranceMethod),
		"assurance_method_display": t.AssuranceMethodDisplay,
	}
	if t.ActivatedAt != nil {
		out["activation_date"] = t.ActivatedAt.UTC().Format(time.RFC3339)
	}
	if t.ExpiresAt != nil {
		out["expiration_date"] = t.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if t.StatusUpdatedAt != nil {
		out["last_status_update"] = t.StatusUpdatedAt.UTC().Format(time.RFC3339)
	}
	addAttributes(out, t.Attributes)
	return json.Marshal(out)
}

func addAttributes(out map[string]any, a Attributes) {
	setIf := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}
	setIf("tsp", a.TSP)
	setIf("token_requestor_name", a.TokenRequestorName)
	setIf("pan_source", a.PANSource)
	setIf("device_id", a.DeviceID)
	setIf("device_type", a.DeviceType)
	setIf("device_name", a.DeviceName)
	setIf("device_number", a.DeviceNumber)
	setIf("wallet_reason_codes", a.WalletReasonCodes)
	setIf("network_decisioning", a.NetworkDecisioning)
	setIf("expiration_month", a.ExpirationMonth)
	setIf("expiration_year", a.ExpirationYear)
	if a.WalletAccountScore != nil {
		out["wallet_account_score"] = *a.WalletAccountScore
	}
	if a.WalletDeviceScore != nil {
		out["wallet_device_score"] = *a.WalletDeviceScore
	}
	if a.NetworkTokenScore != nil {
		out["network_token_score"] = *a.NetworkTokenScore
	}
	if a.RiskAssessmentScore != nil {
		out["risk_assessment_score"] = *a.RiskAssessmentScore
	}
	if a.CreatedAt != nil {
		out["creation_date"] = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	if a.Deleted {
		out["is_deleted"] = true
	}
	if a.DeletedAt != nil {
		out["deleted_at"] = a.DeletedAt.UTC().Format(time.RFC3339)
	}
}

// TransitionRequest is the fully-formed outbound request for a lifecycle
// action, produced by the request builder once legality and reason checks
// have passed.
type TransitionRequest struct {
	Action              Action
	ReasonCode          string
	Note                string
	OperatorID          string
	CorrelationID       string
	ExternalReferenceID string
	ExternalRequestorID string
}

// PendingChange records a transition that has been dispatched but not yet
// confirmed by a refetch. At most one exists per internal id; a newer
// request replaces the older entry.
type PendingChange struct {
	InternalID      string    `json:"internal_id"`
	Action          Action    `json:"action"`
	RequestedStatus Status    `json:"requested_status"`
	RequestedAt     time.Time `json:"requested_at"`
	CorrelationID   string    `json:"correlation_id"`
}
