package main

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchTimeout time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <token-id>",
	Short: "Poll the directory until a pending change settles",
	Long: `Poll the directory until the token's pending change is confirmed or
the timeout elapses. Useful after a transition request that failed at
the transport: the directory may still have applied it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		internalID := args[0]

		if !manager.HasPendingChange(internalID) {
			fmt.Printf("Token %s has no pending change to watch.\n", internalID)
			return
		}

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = 2 * time.Second
		policy.MaxInterval = 30 * time.Second
		policy.MaxElapsedTime = watchTimeout

		err := backoff.Retry(func() error {
			tok, err := manager.Refresh(cmd.Context(), internalID)
			if err != nil {
				// Transient directory failures are the reason we poll.
				return err
			}
			if manager.HasPendingChange(internalID) {
				return fmt.Errorf("still pending (directory reports %s)", tok.Status)
			}
			return nil
		}, backoff.WithContext(policy, cmd.Context()))
		if err != nil {
			fail("pending change did not settle: %v", err)
		}

		tok, err := manager.GetToken(cmd.Context(), internalID)
		if err != nil {
			fail("%v", err)
		}
		color.Green("Token %s settled as %s.", internalID, tok.StatusDisplay)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 2*time.Minute, "give up after this long")
}
