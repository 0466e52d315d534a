package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <token-id>",
	Short: "Show one token's full record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tok, err := manager.GetToken(cmd.Context(), args[0])
		if err != nil {
			fail("%v", err)
		}

		if jsonOutput {
			outputJSON(tok)
			return
		}

		fmt.Printf("Token %s\n", tok.InternalID)
		fmt.Printf("  Value:      %s\n", tok.Value)
		fmt.Printf("  Status:     %s\n", renderStatus(tok.Status))
		if pc, ok := manager.PendingChange(tok.InternalID); ok {
			fmt.Printf("  Pending:    %s requested %s (correlation %s)\n",
				pc.Action, pc.RequestedAt.Format(time.RFC3339), pc.CorrelationID)
		}
		if tok.Type != "" {
			fmt.Printf("  Type:       %s\n", tok.TypeDisplay)
		}
		if tok.AssuranceMethod != "" {
			fmt.Printf("  Assurance:  %s\n", tok.AssuranceMethodDisplay)
		}
		fmt.Printf("  Reference:  %s\n", tok.ExternalReferenceID)
		fmt.Printf("  Requestor:  %s", tok.ExternalRequestorID)
		if tok.Attributes.TokenRequestorName != "" {
			fmt.Printf(" (%s)", tok.Attributes.TokenRequestorName)
		}
		fmt.Println()
		if tok.Attributes.TSP != "" {
			fmt.Printf("  TSP:        %s\n", tok.Attributes.TSP)
		}
		if tok.Attributes.DeviceName != "" {
			fmt.Printf("  Device:     %s (%s)\n", tok.Attributes.DeviceName, tok.Attributes.DeviceType)
		}
		printTime("Activated", tok.ActivatedAt)
		printTime("Expires", tok.ExpiresAt)
		printTime("Updated", tok.StatusUpdatedAt)

		actions := manager.AllowedActions(tok.InternalID)
		if len(actions) == 0 {
			fmt.Println("\nNo actions available: token is in a terminal state.")
			return
		}
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		fmt.Printf("\nAvailable actions: %s\n", strings.Join(names, ", "))
	},
}

func printTime(label string, t *time.Time) {
	if t == nil {
		return
	}
	fmt.Printf("  %-10s %s\n", label+":", t.UTC().Format(time.RFC3339))
}
