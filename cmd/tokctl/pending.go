package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending <token-id>",
	Short: "Show a token's unconfirmed transition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		internalID := args[0]

		// Refresh first so a change the directory has since confirmed
		// clears instead of lingering.
		if _, err := manager.Refresh(cmd.Context(), internalID); err != nil {
			fail("%v", err)
		}

		pc, ok := manager.PendingChange(internalID)
		if !ok {
			fmt.Printf("Token %s has no pending change.\n", internalID)
			return
		}
		if jsonOutput {
			outputJSON(pc)
			return
		}
		fmt.Printf("Token %s: %s requested at %s (correlation %s)\n",
			internalID, pc.Action, pc.RequestedAt.Format(time.RFC3339), pc.CorrelationID)
		fmt.Printf("Presenting as %s until the directory confirms.\n", pc.RequestedStatus)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <token-id>",
	Short: "Discard a token's unconfirmed transition",
	Long: `Discard a token's pending change without contacting the directory.
The next read presents directory state unmodified. Cancelling does not
undo a transition the directory already applied.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if !manager.CancelPending(args[0]) {
			fmt.Printf("Token %s has no pending change.\n", args[0])
			return
		}
		color.Green("Pending change on token %s discarded.", args[0])
	},
}
