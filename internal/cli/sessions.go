package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/csolympiad/portal/pkg/model"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage competition sessions (supervisor)",
	}

	cmd.AddCommand(
		newSessionsListCmd(),
		newSessionsCreateCmd(),
		newSessionsRescheduleCmd(),
		newSessionsDeleteCmd(),
	)
	return cmd
}

func newSessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := client.Sessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch sessions: %w", err)
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions scheduled.")
				return nil
			}
			for _, s := range sessions {
				fmt.Printf("  %d  %-20s %s -> %s (%d teams)\n",
					s.ID, s.Name,
					s.StartTime.Format(time.RFC3339),
					s.EndTime.Format(time.RFC3339),
					len(s.Teams))
			}
			return nil
		},
	}
}

// parseWindowTime accepts RFC3339 or a local "2006-01-02 15:04" timestamp.
func parseWindowTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339 or \"2006-01-02 15:04\")", s)
	}
	return t, nil
}

func newSessionsCreateCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Schedule a new session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseWindowTime(start)
			if err != nil {
				return err
			}
			endAt, err := parseWindowTime(end)
			if err != nil {
				return err
			}
			if !endAt.After(startAt) {
				return fmt.Errorf("end must be after start")
			}

			created, err := client.CreateSession(cmd.Context(), &model.Session{
				Name:      args[0],
				StartTime: startAt,
				EndTime:   endAt,
			})
			if err != nil {
				return fmt.Errorf("create session: %w", err)
			}
			fmt.Printf("Created session %s (id %d)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Window start time")
	cmd.Flags().StringVar(&end, "end", "", "Window end time")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newSessionsRescheduleCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "reschedule <session_id>",
		Short: "Change a session's time window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}

			sessions, err := client.Sessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch sessions: %w", err)
			}
			var sess *model.Session
			for i := range sessions {
				if sessions[i].ID == id {
					sess = &sessions[i]
					break
				}
			}
			if sess == nil {
				return fmt.Errorf("session %d not found", id)
			}

			if start != "" {
				if sess.StartTime, err = parseWindowTime(start); err != nil {
					return err
				}
			}
			if end != "" {
				if sess.EndTime, err = parseWindowTime(end); err != nil {
					return err
				}
			}
			if !sess.EndTime.After(sess.StartTime) {
				return fmt.Errorf("end must be after start")
			}

			if _, err := client.UpdateSession(cmd.Context(), sess); err != nil {
				return fmt.Errorf("update session: %w", err)
			}
			fmt.Printf("Rescheduled session %s: %s -> %s\n",
				sess.Name,
				sess.StartTime.Format(time.RFC3339),
				sess.EndTime.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New window start time")
	cmd.Flags().StringVar(&end, "end", "", "New window end time")
	return cmd
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session_id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			if err := client.DeleteSession(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			fmt.Printf("Deleted session %d\n", id)
			return nil
		},
	}
}
