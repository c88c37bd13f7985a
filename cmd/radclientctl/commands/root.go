package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// secret is the shared secret for the target NAS client entry.
	secret string

	// retryCount is the number of send attempts before giving up.
	retryCount int

	// timeout is the per-attempt receive timeout.
	timeout time.Duration
)

// rootCmd is the top-level cobra command for radclientctl.
var rootCmd = &cobra.Command{
	Use:   "radclientctl",
	Short: "CLI client for exercising a RADIUS server",
	Long:  "radclientctl sends Access-Request and Accounting-Request packets to a RADIUS server and prints the reply.",
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&secret, "secret", "",
		"shared secret for the target NAS client entry (required)")
	rootCmd.PersistentFlags().IntVar(&retryCount, "retries", 3,
		"number of send attempts before giving up")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Second,
		"per-attempt receive timeout")

	rootCmd.AddCommand(accessRequestCmd())
	rootCmd.AddCommand(accountingRequestCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
