package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the backend's clock",
		Long:  "Print the backend's authoritative time alongside the local clock and their skew.",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverNow, err := client.Now(cmd.Context())
			if err != nil {
				return fmt.Errorf("server time: %w", err)
			}
			localNow := time.Now()

			fmt.Printf("Server: %s\n", serverNow.Format(time.RFC3339))
			fmt.Printf("Local:  %s\n", localNow.Format(time.RFC3339))
			fmt.Printf("Skew:   %s\n", serverNow.Sub(localNow).Round(time.Millisecond))
			return nil
		},
	}
}
