package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show and edit your own team",
	}

	cmd.AddCommand(
		newTeamShowCmd(),
		newTeamMembersCmd(),
		newTeamMemberAddCmd(),
		newTeamMemberRemoveCmd(),
	)
	return cmd
}

func newTeamShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your team and its scheduled session",
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := client.MyTeam(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch team: %w", err)
			}

			fmt.Printf("Team: %s (id %d)\n", team.Name, team.ID)
			if team.Session != nil {
				s := team.Session
				fmt.Printf("  Session: %s\n", s.Name)
				fmt.Printf("  Start:   %s\n", s.StartTime.Format(time.RFC3339))
				fmt.Printf("  End:     %s\n", s.EndTime.Format(time.RFC3339))
			} else if team.SessionID != nil {
				fmt.Printf("  Session: #%d\n", *team.SessionID)
			} else {
				fmt.Println("  Session: not scheduled")
			}
			return nil
		},
	}
}

func newTeamMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List your team's roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := client.Members(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch members: %w", err)
			}

			if len(members) == 0 {
				fmt.Println("No members registered.")
				return nil
			}
			for _, m := range members {
				fmt.Printf("  %d  %s %s\n", m.ID, m.FirstName, m.LastName)
			}
			return nil
		},
	}
}

func newTeamMemberAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "member-add <first> <last>",
		Short: "Add a member to your team's roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client.AddMember(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("add member: %w", err)
			}
			fmt.Printf("Added %s %s (id %d)\n", m.FirstName, m.LastName, m.ID)
			return nil
		},
	}
}

func newTeamMemberRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "member-remove <id>",
		Short: "Remove a member from your team's roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}
			if err := client.DeleteMember(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove member: %w", err)
			}
			fmt.Printf("Removed member %d\n", id)
			return nil
		},
	}
}
