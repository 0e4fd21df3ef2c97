package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the score table (supervisor)",
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, err := client.Scores(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch scores: %w", err)
			}

			if len(scores) == 0 {
				fmt.Println("No scores yet.")
				return nil
			}
			for _, s := range scores {
				pct := 0
				if s.MaxScore > 0 {
					pct = s.Score * 100 / s.MaxScore
				}
				fmt.Printf("  %-20s %d/%d (%d%%)\n", s.TeamName, s.Score, s.MaxScore, pct)
			}
			return nil
		},
	}
}
