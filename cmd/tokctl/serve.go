package main

import (
	"github.com/spf13/cobra"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	Long: `Run the admin HTTP API for back-office tooling. The API mirrors the
CLI: listing, detail, transitions with full validation, and pending
change management. It is an internal surface; do not expose it to
cardholder traffic.`,
	Run: func(_ *cobra.Command, _ []string) {
		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		srv := server.New(manager, log)
		if err := srv.Run(addr); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "bind address (default from config)")
}
