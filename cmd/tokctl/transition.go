package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

var (
	transitionReason string
	transitionNote   string
)

var activateCmd = &cobra.Command{
	Use:   "activate <token-id>",
	Short: "Activate an inactive token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd, args[0], token.ActionActivate)
	},
}

var suspendCmd = &cobra.Command{
	Use:   "suspend <token-id>",
	Short: "Suspend an active token",
	Long: `Suspend an active token. A suspended token declines at authorization
but keeps its provisioned credentials; resume restores it without
re-provisioning.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd, args[0], token.ActionSuspend)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <token-id>",
	Short: "Resume a suspended token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd, args[0], token.ActionResume)
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <token-id>",
	Short: "Permanently deactivate a token",
	Long: `Permanently deactivate a token. Deactivation is terminal: the token
cannot be reactivated and the cardholder must re-provision to pay again.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd, args[0], token.ActionDeactivate)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{activateCmd, suspendCmd, resumeCmd, deactivateCmd} {
		cmd.Flags().StringVar(&transitionReason, "reason", "", "reason code (interactive prompt when omitted)")
		cmd.Flags().StringVar(&transitionNote, "note", "", "free-text note attached to the request")
	}
}

func runTransition(cmd *cobra.Command, internalID string, action token.Action) {
	reason := transitionReason
	note := transitionNote

	if reason == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fail("--reason is required (valid for %s: %s)", action, strings.Join(token.Reasons(action), ", "))
		}
		var err error
		reason, note, err = promptReason(action, note)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Aborted.")
				return
			}
			fail("%v", err)
		}
	}

	tok, err := manager.RequestTransition(cmd.Context(), internalID, action, reason, note)
	if err != nil {
		if token.Kind(err) == token.KindExternalCommunication && manager.HasPendingChange(internalID) {
			color.Yellow("Directory unreachable; the request may still have been applied.")
			color.Yellow("Run 'tokctl watch %s' or 'tokctl show %s' to settle it, or 'tokctl cancel %s' to discard.",
				internalID, internalID, internalID)
		}
		fail("%v", err)
	}

	if jsonOutput {
		outputJSON(tok)
		return
	}
	if manager.HasPendingChange(internalID) {
		color.Yellow("Requested %s on token %s; awaiting directory confirmation.", action, internalID)
		return
	}
	color.Green("Token %s is now %s.", internalID, tok.StatusDisplay)
}

// promptReason runs the interactive reason form for the action.
func promptReason(action token.Action, note string) (string, string, error) {
	var reason string
	options := make([]huh.Option[string], 0, len(token.Reasons(action)))
	for _, r := range token.Reasons(action) {
		options = append(options, huh.NewOption(r, r))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Reason for %s", action)).
				Options(options...).
				Value(&reason),
			huh.NewInput().
				Title("Note (optional)").
				Value(&note),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return reason, note, nil
}
