package token

import "strings"

// Status represents the lifecycle state of a tokenized payment credential.
// The set is closed: the directory may report other strings, but the
// normalizer coerces anything unrecognized to StatusInactive.
type Status string

const (
	StatusInactive    Status = "INACTIVE"
	StatusActive      Status = "ACTIVE"
	StatusSuspended   Status = "SUSPENDED"
	StatusDeactivated Status = "DEACTIVATED"
)

// AllStatuses lists every valid status in display order.
func AllStatuses() []Status {
	return []Status{StatusInactive, StatusActive, StatusSuspended, StatusDeactivated}
}

// IsValid checks if the status is one of the defined values.
func (s Status) IsValid() bool {
	switch s {
	case StatusInactive, StatusActive, StatusSuspended, StatusDeactivated:
		return true
	}
	return false
}

// Terminal reports whether no outbound transition is defined from s.
func (s Status) Terminal() bool {
	return s == StatusDeactivated
}

// Display returns the human-readable label for the status. The label is
// always derived from the coded value; callers must never pair a status
// with any other label.
func (s Status) Display() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusSuspended:
		return "Suspended"
	case StatusDeactivated:
		return "Deactivated"
	case StatusInactive:
		return "Inactive"
	}
	return string(s)
}

// ParseStatus maps a raw directory value onto the closed status set.
// Matching is case-insensitive and tolerates surrounding whitespace.
// ok is false when the value is unrecognized; callers coerce to
// StatusInactive and surface a warning rather than accepting it.
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return StatusActive, true
	case "INACTIVE":
		return StatusInactive, true
	case "SUSPENDED":
		return StatusSuspended, true
	case "DEACTIVATED", "DELETED":
		return StatusDeactivated, true
	}
	return StatusInactive, false
}
