package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/berrybet/wagerd/internal/infrastructure/auth"
	"github.com/berrybet/wagerd/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wagerd-cli",
		Short: "Wagerd CLI tool",
		Long:  `A command line interface for interacting with the wagerd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wagerd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	rankingCmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the leaderboard",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			getJSON(fmt.Sprintf("/api/ranking?limit=%d", limit))
		},
	}
	rankingCmd.Flags().Int("limit", 10, "Number of rows to fetch")

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user's account and stats",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/users/me")
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List the authenticated user's ledger entries",
		Run: func(cmd *cobra.Command, args []string) {
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			getJSON(fmt.Sprintf("/api/transactions/me?page=%d&limit=%d", page, limit))
		},
	}
	transactionsCmd.Flags().Int("page", 1, "Page number")
	transactionsCmd.Flags().Int("limit", 20, "Entries per page")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.AddCommand(migrateUpCmd(), migrateDownCmd())

	rootCmd.AddCommand(rankingCmd, meCmd, transactionsCmd, tokenCmd(), migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// tokenCmd mints a bearer token for a user. Meant for local testing and
// operator access, not for the production login flow.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Generate a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			expiration, _ := cmd.Flags().GetDuration("expiration")
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("no secret: pass --secret or set JWT_SECRET")
			}

			signed, err := auth.NewJWTManager(secret, expiration).Generate(args[0])
			if err != nil {
				return err
			}
			fmt.Println(signed)
			return nil
		},
	}
	cmd.Flags().String("secret", "", "JWT signing secret (defaults to JWT_SECRET)")
	cmd.Flags().Duration("expiration", 24*time.Hour, "Token lifetime")
	return cmd
}

func migrateUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, _ := cmd.Flags().GetString("database-url")
			path, _ := cmd.Flags().GetString("path")
			return postgres.RunMigrations(dbURL, path)
		},
	}
	addMigrateFlags(cmd)
	return cmd
}

func migrateDownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, _ := cmd.Flags().GetString("database-url")
			path, _ := cmd.Flags().GetString("path")
			return postgres.RunMigrationsDown(dbURL, path)
		},
	}
	addMigrateFlags(cmd)
	return cmd
}

func addMigrateFlags(cmd *cobra.Command) {
	cmd.Flags().String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().String("path", "migrations", "Path to migration files")
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
