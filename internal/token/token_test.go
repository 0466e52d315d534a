package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   Status
		wantOK bool
	}{
		{"ACTIVE", StatusActive, true},
		{"active", StatusActive, true},
		{" Suspended ", StatusSuspended, true},
		{"INACTIVE", StatusInactive, true},
		{"DEACTIVATED", StatusDeactivated, true},
		{"DELETED", StatusDeactivated, true},
		{"RESUMED", StatusInactive, false},
		{"", StatusInactive, false},
		{"garbage", StatusInactive, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseStatus(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStatusDisplayConsistency(t *testing.T) {
	want := map[Status]string{
		StatusInactive:    "Inactive",
		StatusActive:      "Active",
		StatusSuspended:   "Suspended",
		StatusDeactivated: "Deactivated",
	}
	for _, s := range AllStatuses() {
		if got := s.Display(); got != want[s] {
			t.Errorf("Display(%s) = %q, want %q", s, got, want[s])
		}
	}
}

func TestTransitionTable(t *testing.T) {
	legal := map[Status]map[Action]bool{
		StatusInactive:    {ActionActivate: true, ActionDeactivate: true},
		StatusActive:      {ActionSuspend: true, ActionDeactivate: true},
		StatusSuspended:   {ActionResume: true, ActionDeactivate: true},
		StatusDeactivated: {},
	}
	// Every (status, action) pair outside the table must be rejected.
	for _, s := range AllStatuses() {
		for _, a := range AllActions() {
			want := legal[s][a]
			if got := CanTransition(s, a); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", s, a, got, want)
			}
		}
	}
}

func TestDeactivatedIsTerminal(t *testing.T) {
	if !StatusDeactivated.Terminal() {
		t.Error("Deactivated must be terminal")
	}
	if got := AllowedActions(StatusDeactivated); got != nil {
		t.Errorf("AllowedActions(Deactivated) = %v, want nil", got)
	}
	for _, s := range []Status{StatusInactive, StatusActive, StatusSuspended} {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestActionTargets(t *testing.T) {
	tests := []struct {
		action Action
		want   Status
	}{
		{ActionActivate, StatusActive},
		{ActionSuspend, StatusSuspended},
		// Resume reports Active on the next read, not a distinct state.
		{ActionResume, StatusActive},
		{ActionDeactivate, StatusDeactivated},
	}
	for _, tt := range tests {
		if got := tt.action.Target(); got != tt.want {
			t.Errorf("Target(%s) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestReasonVocabularies(t *testing.T) {
	for _, a := range AllActions() {
		if len(Reasons(a)) == 0 {
			t.Errorf("action %s has no reason vocabulary", a)
		}
		for _, r := range Reasons(a) {
			if !ValidReason(a, r) {
				t.Errorf("ValidReason(%s, %q) = false for a listed reason", a, r)
			}
		}
		if ValidReason(a, "not-a-real-reason") {
			t.Errorf("ValidReason(%s, not-a-real-reason) = true", a)
		}
		if ValidReason(a, "") {
			t.Errorf("ValidReason(%s, empty) = true", a)
		}
	}
	if !ValidReason(ActionActivate, "Account reopened") {
		t.Error("activate must accept 'Account reopened'")
	}
	if !ValidReason(ActionSuspend, "Card lost") {
		t.Error("suspend must accept 'Card lost'")
	}
}

func TestAssuranceDisplay(t *testing.T) {
	if got := AssuranceMethod("00").Display(); got != "D&V Not Performed" {
		t.Errorf("Display(00) = %q", got)
	}
	if got := AssuranceMethod("14").Display(); got != "Issuer Asserted Authentication" {
		t.Errorf("Display(14) = %q", got)
	}
	// Unknown codes keep their value and render a generic label.
	unknown := AssuranceMethod("99")
	if unknown.Known() {
		t.Error("99 must not be a known code")
	}
	if got := unknown.Display(); got != "Assurance method 99" {
		t.Errorf("Display(99) = %q", got)
	}
	if got := AssuranceMethod("").Display(); got != "" {
		t.Errorf("Display(empty) = %q, want empty", got)
	}
}

func TestSetStatusKeepsDisplayInSync(t *testing.T) {
	tok := &Token{InternalID: "42"}
	tok.SetStatus(StatusSuspended)
	if tok.Status != StatusSuspended || tok.StatusDisplay != "Suspended" {
		t.Errorf("SetStatus left (%s, %q)", tok.Status, tok.StatusDisplay)
	}
}

func TestMarshalJSONMirrors(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	tok := &Token{
		InternalID:          "17",
		ExternalReferenceID: "DNITHE301982638096",
		ExternalRequestorID: "50110030273",
		Value:               "4761739001010010",
		Type:                "VI",
		TypeDisplay:         "VI",
		AssuranceMethod:     "12",
		StatusUpdatedAt:     &now,
	}
	tok.SetStatus(StatusActive)
	tok.AssuranceMethodDisplay = tok.AssuranceMethod.Display()

	data, err := json.Marshal(tok)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Both naming variants of every status-bearing field must be present
	// and identical.
	mirrors := [][2]string{
		{"token_status", "tokenStatus"},
		{"status_display", "statusDisplay"},
		{"token_assurance_method", "tokenAssuranceMethod"},
		{"token_reference_id", "tokenReferenceID"},
		{"token_requestor_id", "tokenRequestorID"},
	}
	for _, pair := range mirrors {
		a, aok := m[pair[0]]
		b, bok := m[pair[1]]
		if !aok || !bok {
			t.Fatalf("missing mirror pair %v in %s", pair, data)
		}
		if a != b {
			t.Errorf("mirror mismatch %s=%v %s=%v", pair[0], a, pair[1], b)
		}
	}
	if m["token_status"] != "ACTIVE" || m["status_display"] != "Active" {
		t.Errorf("status fields inconsistent: %v / %v", m["token_status"], m["status_display"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	score := 87
	at := time.Now()
	tok := &Token{InternalID: "1", ActivatedAt: &at}
	tok.Attributes.WalletAccountScore = &score
	tok.SetStatus(StatusActive)

	clone := tok.Clone()
	clone.SetStatus(StatusSuspended)
	*clone.Attributes.WalletAccountScore = 1
	*clone.ActivatedAt = at.Add(time.Hour)

	if tok.Status != StatusActive {
		t.Error("clone mutated original status")
	}
	if *tok.Attributes.WalletAccountScore != 87 {
		t.Error("clone shares score pointer with original")
	}
	if !tok.ActivatedAt.Equal(at) {
		t.Error("clone shares timestamp pointer with original")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{&InvalidTransitionError{From: StatusDeactivated, Action: ActionResume}, KindInvalidTransition},
		{&InvalidReasonError{Action: ActionSuspend, Reason: "nope"}, KindInvalidReason},
		{&MissingExternalIdentifiersError{InternalID: "9"}, KindMissingExternalIdentifiers},
		{&NotFoundError{InternalID: "9"}, KindNotFound},
		{&ExternalCommunicationError{Op: "list", Err: errors.New("boom")}, KindExternalCommunication},
		{fmt.Errorf("wrapped: %w", &ExternalCommunicationError{Op: "detail", Err: errors.New("x")}), KindExternalCommunication},
		{errors.New("anything else"), KindInternal},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
