package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pkgforge/internal/config"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Manage the access token stored for the active forge.

Tokens are kept in ~/.pkgforge/config.toml. The PKGFORGE_TOKEN
environment variable overrides the stored token.`,
}

// authTokenCmd stores a token for the active forge
var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store an access token for the active forge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthToken()
	},
}

// authClearCmd removes the stored token
var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token for the active forge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthClear()
	},
}

func init() {
	authCmd.AddCommand(authTokenCmd)
	authCmd.AddCommand(authClearCmd)
}

func runAuthToken() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	name, forge, err := currentForge(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Storing token for forge '%s' (%s)\n", name, forge.URL)
	fmt.Print("Token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	fmt.Println()

	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	forge.Token = token
	cfg.Forges[name] = forge

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Token stored for '%s'\n", name)
	return nil
}

func runAuthClear() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	name, forge, err := currentForge(cfg)
	if err != nil {
		return err
	}

	forge.Token = ""
	cfg.Forges[name] = forge

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Token cleared for '%s'\n", name)
	return nil
}
