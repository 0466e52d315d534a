package token

import "fmt"

// AssuranceMethod is the EMVCo token assurance method code reported by the
// TSP for identification & verification of the cardholder.
type AssuranceMethod string

// assuranceDescriptions maps the defined codes to their fixed labels.
// Codes outside this table are preserved verbatim and rendered with a
// generic fallback.
var assuranceDescriptions = map[AssuranceMethod]string{
	"00": "D&V Not Performed",
	"10": "Card Issuer Account Verification",
	"11": "Card Issuer Interactive Cardholder Verification - 1 Factor",
	"12": "Card Issuer Interactive Cardholder Verification - 2 Factor",
	"13": "Card Issuer Risk Oriented Non-Interactive Cardholder Authentication",
	"14": "Issuer Asserted Authentication",
}

// Known reports whether the code has a defined description.
func (m AssuranceMethod) Known() bool {
	_, ok := assuranceDescriptions[m]
	return ok
}

// Display returns the fixed description for the code, or a generic label
// for unknown codes. Empty codes render empty.
func (m AssuranceMethod) Display() string {
	if m == "" {
		return ""
	}
	if desc, ok := assuranceDescriptions[m]; ok {
		return desc
	}
	return fmt.Sprintf("Assurance method %s", string(m))
}
