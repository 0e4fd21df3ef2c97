package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/csolympiad/portal/pkg/model"
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage registered teams (supervisor)",
	}

	cmd.AddCommand(
		newTeamsListCmd(),
		newTeamsCreateCmd(),
		newTeamsAssignCmd(),
		newTeamsDeleteCmd(),
	)
	return cmd
}

func newTeamsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := client.Teams(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch teams: %w", err)
			}

			if len(teams) == 0 {
				fmt.Println("No teams registered.")
				return nil
			}
			for _, t := range teams {
				session := "unscheduled"
				if t.SessionID != nil {
					session = fmt.Sprintf("session %d", *t.SessionID)
				}
				fmt.Printf("  %d  %-20s %s\n", t.ID, t.Name, session)
			}
			return nil
		},
	}
}

func newTeamsCreateCmd() *cobra.Command {
	var password string
	var sessionID int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Register a new team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			team := &model.Team{Name: args[0], Password: password}
			if sessionID > 0 {
				team.SessionID = &sessionID
			}

			created, err := client.CreateTeam(cmd.Context(), team)
			if err != nil {
				return fmt.Errorf("create team: %w", err)
			}
			fmt.Printf("Created team %s (id %d)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Login password for the team")
	cmd.Flags().IntVar(&sessionID, "session", 0, "Session to schedule the team into")
	return cmd
}

func newTeamsAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <team_id> <session_id>",
		Short: "Assign a team to a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			sessionID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[1])
			}

			teams, err := client.Teams(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch teams: %w", err)
			}
			var team *model.Team
			for i := range teams {
				if teams[i].ID == teamID {
					team = &teams[i]
					break
				}
			}
			if team == nil {
				return fmt.Errorf("team %d not found", teamID)
			}

			team.SessionID = &sessionID
			if _, err := client.UpdateTeam(cmd.Context(), team); err != nil {
				return fmt.Errorf("update team: %w", err)
			}
			fmt.Printf("Assigned %s to session %d\n", team.Name, sessionID)
			return nil
		},
	}
}

func newTeamsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <team_id>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			if err := client.DeleteTeam(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete team: %w", err)
			}
			fmt.Printf("Deleted team %d\n", id)
			return nil
		},
	}
}
