// Package normalize turns raw, schema-ambiguous directory payloads into
// canonical token records. Normalization is a pure function of its input:
// the same payload always produces the same record, and a record fed back
// through normalization reproduces itself.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// Warning reports a non-fatal oddity found while normalizing: the two
// naming conventions disagreeing on a value, or a status outside the closed
// set. Normalization proceeds; warnings exist so drift is diagnosable.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// picked tracks the chosen value for a canonical field and which convention
// asserted it.
type picked struct {
	value any
	conv  convention
}

// Record normalizes one raw directory payload into a canonical token
// record.
//
// Rules, in order: seed defaults for every canonical field; fold every
// recognized alias onto its canonical name; when both conventions assert a
// field and disagree, the TSP (camelCase) value wins, since the gateway
// echoes the authority of record more recently than the management
// database; derive every display field from its coded counterpart.
func Record(raw map[string]any) (*token.Token, []Warning) {
	var warnings []Warning
	fields := make(map[string]picked, len(raw))

	// Sorted iteration keeps conflict resolution deterministic.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		al, ok := aliasTable[key]
		if !ok {
			continue // unrecognized fields are dropped, not guessed at
		}
		val := raw[key]
		if val == nil {
			continue
		}
		prev, exists := fields[al.canonical]
		if !exists {
			fields[al.canonical] = picked{value: val, conv: al.conv}
			continue
		}
		if asString(prev.value) == asString(val) {
			continue
		}
		// Both conventions explicitly assert the field with different
		// values. The camelCase (TSP) variant wins.
		warnings = append(warnings, Warning{
			Field: al.canonical,
			Message: fmt.Sprintf("naming conventions disagree (%q vs %q); keeping the TSP value",
				asString(prev.value), asString(val)),
		})
		if al.conv == convCamel && prev.conv == convSnake {
			fields[al.canonical] = picked{value: val, conv: al.conv}
		}
	}

	tok := &token.Token{
		InternalID:          str(fields, fieldInternalID),
		ExternalReferenceID: str(fields, fieldReferenceID),
		ExternalRequestorID: str(fields, fieldRequestorID),
		Value:               str(fields, fieldValue),
		Type:                str(fields, fieldType),
	}

	// Status: default Inactive only when no status-bearing field is
	// present at all; unrecognized values coerce with a warning.
	if p, ok := fields[fieldStatus]; ok {
		status, recognized := token.ParseStatus(asString(p.value))
		if !recognized {
			warnings = append(warnings, Warning{
				Field:   fieldStatus,
				Message: fmt.Sprintf("unrecognized status %q coerced to %s", asString(p.value), token.StatusInactive),
			})
		}
		tok.SetStatus(status)
	} else {
		tok.SetStatus(token.StatusInactive)
	}

	// Display fields always derive from their coded counterparts. A raw
	// status_display is ignored entirely: SetStatus already wrote the only
	// label consistent with the coded status.
	tok.TypeDisplay = str(fields, fieldTypeDisplay)
	if tok.TypeDisplay == "" {
		tok.TypeDisplay = tok.Type
	}
	tok.AssuranceMethod = token.AssuranceMethod(str(fields, fieldAssurance))
	tok.AssuranceMethodDisplay = tok.AssuranceMethod.Display()

	tok.ActivatedAt = timestamp(fields, fieldActivationDate)
	tok.ExpiresAt = timestamp(fields, fieldExpirationDate)
	tok.StatusUpdatedAt = timestamp(fields, fieldLastUpdate)

	tok.Attributes = token.Attributes{
		TSP:                 str(fields, fieldTSP),
		TokenRequestorName:  str(fields, fieldRequestorName),
		PANSource:           str(fields, fieldPANSource),
		DeviceID:            str(fields, fieldDeviceID),
		DeviceType:          str(fields, fieldDeviceType),
		DeviceName:          str(fields, fieldDeviceName),
		DeviceNumber:        str(fields, fieldDeviceNumber),
		WalletAccountScore:  intPtr(fields, fieldWalletAcctScore),
		WalletDeviceScore:   intPtr(fields, fieldWalletDevScore),
		WalletReasonCodes:   str(fields, fieldWalletReasons),
		NetworkTokenScore:   intPtr(fields, fieldNetworkScore),
		NetworkDecisioning:  str(fields, fieldNetworkDecision),
		RiskAssessmentScore: intPtr(fields, fieldRiskScore),
		ExpirationMonth:     str(fields, fieldExpMonth),
		ExpirationYear:      str(fields, fieldExpYear),
		CreatedAt:           timestamp(fields, fieldCreationDate),
		Deleted:             boolean(fields, fieldDeleted),
		DeletedAt:           timestamp(fields, fieldDeletedAt),
	}

	return tok, warnings
}

func str(fields map[string]picked, name string) string {
	p, ok := fields[name]
	if !ok {
		return ""
	}
	return asString(p.value)
}

func boolean(fields map[string]picked, name string) bool {
	p, ok := fields[name]
	if !ok {
		return false
	}
	switch v := p.value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

func intPtr(fields map[string]picked, name string) *int {
	p, ok := fields[name]
	if !ok {
		return nil
	}
	switch v := p.value.(type) {
	case int:
		return &v
	case float64:
		n := int(v)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
	}
	return nil
}

// timestampLayouts covers the date shapes observed in directory payloads.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timestamp(fields map[string]picked, name string) *time.Time {
	p, ok := fields[name]
	if !ok {
		return nil
	}
	s := strings.TrimSpace(asString(p.value))
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Second precision: the record round-trips through RFC3339
			// when re-presented to the directory.
			t = t.UTC().Truncate(time.Second)
			return &t
		}
	}
	return nil
}

// asString renders any raw JSON value as its comparable string form.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
