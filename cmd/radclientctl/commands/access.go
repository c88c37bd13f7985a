package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/goradius/internal/radclient"
	"github.com/dantte-lp/goradius/internal/radius"
)

func accessRequestCmd() *cobra.Command {
	var (
		addr     string
		user     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "access-request",
		Short: "Send an Access-Request and print the reply",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			if user == "" {
				return fmt.Errorf("--user is required")
			}

			client, err := radclient.New(addr, secret,
				radclient.WithRetryCount(retryCount),
				radclient.WithTimeout(timeout),
			)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer client.Close()

			req := radius.AccessRequest(user, password)
			req.Identifier = radius.NextIdentifier()

			resp, err := client.Communicate(req)
			if err != nil {
				return fmt.Errorf("access-request: %w", err)
			}

			fmt.Printf("%s (id=%d)\n", resp.Code, resp.Identifier)
			for _, attr := range resp.Attributes {
				fmt.Printf("  attribute %d: % x\n", attr.Code, attr.Raw)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:1812", "authentication server address (host:port)")
	cmd.Flags().StringVar(&user, "user", "", "User-Name value (required)")
	cmd.Flags().StringVar(&password, "password", "", "User-Password value")

	return cmd
}
