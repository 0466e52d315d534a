// Package export writes token listings to CSV for offline analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// columns is the fixed header row. Order is part of the format: downstream
// spreadsheets key on position, not name.
var columns = []string{
	"id",
	"token_value",
	"token_status",
	"status_display",
	"token_type",
	"token_assurance_method",
	"assurance_method_display",
	"tsp",
	"token_requestor_name",
	"device_name",
	"device_type",
	"activation_date",
	"expiration_date",
	"last_status_update",
	"creation_date",
}

// WriteCSV writes the tokens as CSV, header first.
func WriteCSV(w io.Writer, tokens []*token.Token) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, tok := range tokens {
		row := []string{
			tok.InternalID,
			tok.Value,
			string(tok.Status),
			tok.StatusDisplay,
			tok.Type,
			string(tok.AssuranceMethod),
			tok.AssuranceMethodDisplay,
			tok.Attributes.TSP,
			tok.Attributes.TokenRequestorName,
			tok.Attributes.DeviceName,
			tok.Attributes.DeviceType,
			formatTime(tok.ActivatedAt),
			formatTime(tok.ExpiresAt),
			formatTime(tok.StatusUpdatedAt),
			formatTime(tok.Attributes.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing token %s: %w", tok.InternalID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename returns the conventional export file name for the given day,
// e.g. "tokens-export-2026-08-31.csv".
func Filename(day time.Time) string {
	return fmt.Sprintf("tokens-export-%s.csv", day.Format("2006-01-02"))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
