package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/goradius/internal/radclient"
	"github.com/dantte-lp/goradius/internal/radius"
)

func accountingRequestCmd() *cobra.Command {
	var (
		addr       string
		statusType string
		sessionID  string
		userName   string
	)

	cmd := &cobra.Command{
		Use:   "accounting-request",
		Short: "Send an Accounting-Request and print the reply",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			if sessionID == "" {
				return fmt.Errorf("--session-id is required")
			}

			client, err := radclient.New(addr, secret,
				radclient.WithRetryCount(retryCount),
				radclient.WithTimeout(timeout),
			)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer client.Close()

			dict := radius.DefaultDictionary()

			req := radius.AccountingRequest()
			req.Identifier = radius.NextIdentifier()

			if err := req.AddValue(dict, "Acct-Status-Type", statusType); err != nil {
				return fmt.Errorf("Acct-Status-Type: %w", err)
			}
			if err := req.AddValue(dict, "Acct-Session-Id", sessionID); err != nil {
				return fmt.Errorf("Acct-Session-Id: %w", err)
			}
			if userName != "" {
				if err := req.AddValue(dict, "User-Name", userName); err != nil {
					return fmt.Errorf("User-Name: %w", err)
				}
			}

			resp, err := client.Communicate(req)
			if err != nil {
				return fmt.Errorf("accounting-request: %w", err)
			}

			fmt.Printf("%s (id=%d)\n", resp.Code, resp.Identifier)

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:1813", "accounting server address (host:port)")
	cmd.Flags().StringVar(&statusType, "status-type", "Start", "Acct-Status-Type alias (Start, Stop, Interim-Update, ...)")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Acct-Session-Id value (required)")
	cmd.Flags().StringVar(&userName, "user", "", "User-Name value")

	return cmd
}
