package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	Token string `json:"token"`
}

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <name>",
		Short: "Authenticate with the competition backend",
		Long:  "Log in as a team or supervisor and store the issued token for later portalctl calls.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if password == "" {
				fmt.Printf("Password for %s: ", name)
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			token, err := client.Login(cmd.Context(), name, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			credPath, err := credentialsPath()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(credPath), 0700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			creds := credentials{Token: token.AccessToken}
			data, err := json.MarshalIndent(creds, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal credentials: %w", err)
			}

			if err := os.WriteFile(credPath, data, 0600); err != nil {
				return fmt.Errorf("write credentials: %w", err)
			}

			fmt.Printf("Logged in as %s, credentials saved to %s\n", name, credPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	return cmd
}

// credentialsPath returns the path to the credentials file (~/.portal/credentials.json).
func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".portal", credentialsFileName), nil
}

// LoadToken reads the stored backend token, returning empty string if not found.
func LoadToken() string {
	p, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	return creds.Token
}
