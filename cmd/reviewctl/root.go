// reviewctl is a terminal front-end for the business-plan review
// backend. It drives the same API surface the web pages use.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/session"
)

var (
	apiBase string
	wsBase  string

	sess *session.Store
	api  *client.Client
)

var rootCmd = &cobra.Command{
	Use:           "reviewctl",
	Short:         "Business-plan review workflow from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		sess = session.NewStore()
		sess.OnExpired(func() {
			removeCachedToken()
			fmt.Fprintln(os.Stderr, "session expired, run `reviewctl login` to sign in again")
		})
		if token := loadCachedToken(); token != "" {
			sess.SetToken(token)
		}
		api = client.New(apiBase, sess)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", envOr("REVIEW_API", "http://localhost:8000/api/v1"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&wsBase, "ws", envOr("REVIEW_WS", "ws://localhost:8000"), "WebSocket base URL")

	rootCmd.AddCommand(loginCmd, logoutCmd, dashboardCmd, projectsCmd,
		scoresCmd, summaryCmd, historyCmd, missingCmd,
		uploadCmd, downloadCmd, watchCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Obtain a token and cache it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := api.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if err := saveCachedToken(token); err != nil {
			return fmt.Errorf("cache token: %w", err)
		}
		fmt.Println("logged in as", args[0])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the cached token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api.Logout()
		removeCachedToken()
		fmt.Println("logged out")
		return nil
	},
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".bp-review", "token"), nil
}

func loadCachedToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveCachedToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func removeCachedToken() {
	if path, err := tokenPath(); err == nil {
		os.Remove(path)
	}
}

// table writes aligned rows to stdout.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
