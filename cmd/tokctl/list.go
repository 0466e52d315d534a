package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

var (
	listStatus  string
	listTSP     string
	listSearch  string
	listDetails bool
)

// Status chip styles, one per lifecycle state.
var statusStyles = map[token.Status]lipgloss.Style{
	token.StatusActive:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	token.StatusInactive:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	token.StatusSuspended:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	token.StatusDeactivated: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true),
}

var pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true)

func renderStatus(s token.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return s.Display()
	}
	return style.Render(s.Display())
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tokens held at the directory",
	Long: `List tokens, optionally filtered.

Status and value filters are evaluated by the directory; TSP and search
filters are applied locally after normalization. Tokens with an
unconfirmed transition show their requested status with a pending marker.

Examples:
  tokctl list
  tokctl list --status SUSPENDED
  tokctl list --tsp VTS --search paywallet
  tokctl list --details --json`,
	Run: func(cmd *cobra.Command, _ []string) {
		opts := lifecycle.ListOptions{
			TSP:           listTSP,
			Search:        listSearch,
			EnrichDetails: listDetails,
		}
		opts.Filter.Status = listStatus

		tokens, err := manager.ListTokens(cmd.Context(), opts)
		if err != nil {
			fail("%v", err)
		}

		if jsonOutput {
			outputJSON(tokens)
			return
		}
		if len(tokens) == 0 {
			fmt.Println("No tokens found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tVALUE\tSTATUS\tTSP\tREQUESTOR\t")
		for _, tok := range tokens {
			status := renderStatus(tok.Status)
			if label, ok := manager.PendingActionLabel(tok.InternalID); ok {
				status += pendingStyle.Render(" (" + label + " pending)")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				tok.InternalID,
				tok.Value,
				status,
				tok.Attributes.TSP,
				tok.Attributes.TokenRequestorName)
		}
		_ = w.Flush()
		fmt.Printf("\n%d token(s)\n", len(tokens))
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by coded status (INACTIVE, ACTIVE, SUSPENDED, DEACTIVATED)")
	listCmd.Flags().StringVar(&listTSP, "tsp", "", "filter by token service provider (e.g. MDES, VTS)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "match against value, requestor and device name")
	listCmd.Flags().BoolVar(&listDetails, "details", false, "fetch full detail records (device and risk fields)")
}
