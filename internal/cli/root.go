package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/csolympiad/portal/internal/backend"
	"github.com/csolympiad/portal/internal/logging"
)

var (
	flagBackend   string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *backend.Client
)

// defaultBackend returns the default backend URL, checking PORTAL_BACKEND_URL first.
func defaultBackend() string {
	if s := os.Getenv("PORTAL_BACKEND_URL"); s != "" {
		return s
	}
	return "http://localhost:4402"
}

// NewRootCmd creates the root cobra command for the portalctl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Manage a competition from the command line",
		Long:  "portalctl schedules sessions, registers teams, and edits questions against the competition backend.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = backend.New(flagBackend, logger)
			if token := LoadToken(); token != "" {
				client = client.WithToken(token)
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagBackend, "backend", defaultBackend(), "Backend URL (or PORTAL_BACKEND_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newNowCmd(),
		newTeamCmd(),
		newTeamsCmd(),
		newSessionsCmd(),
		newProblemsCmd(),
		newScoresCmd(),
	)

	return root
}
