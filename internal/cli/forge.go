package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkgforge/internal/config"
)

// forgeCmd represents the forge command group
var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Manage forge configurations",
	Long: `Manage configured forges.

A forge is the instance hosting your projects and their package
registries. You can configure multiple forges and switch between them.`,
}

// forgeAddCmd adds a new forge
var forgeAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a new forge",
	Long: `Add a new forge configuration.

Examples:
  pkgforge forge add main https://gitlab.example.com
  pkgforge forge add ci https://gitlab.example.com --token-type job`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenType, _ := cmd.Flags().GetString("token-type")
		return runForgeAdd(args[0], args[1], config.TokenType(tokenType))
	},
}

// forgeListCmd lists configured forges
var forgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured forges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForgeList()
	},
}

// forgeUseCmd sets the active forge
var forgeUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set active forge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForgeUse(args[0])
	},
}

func init() {
	forgeAddCmd.Flags().String("token-type", "", "token type: private (default), oauth or job")

	forgeCmd.AddCommand(forgeAddCmd)
	forgeCmd.AddCommand(forgeListCmd)
	forgeCmd.AddCommand(forgeUseCmd)
}

func runForgeAdd(name, url string, tokenType config.TokenType) error {
	if err := config.ValidateTokenType(tokenType); err != nil {
		return err
	}

	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Forges[name] = config.Forge{
		URL:       url,
		TokenType: tokenType,
	}

	// First forge becomes the active one
	if cfg.Current == "" {
		cfg.Current = name
	}

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Added forge '%s' (%s)\n", name, url)
	if cfg.Current == name {
		fmt.Println("Set as active forge")
	}
	fmt.Println("Use 'pkgforge auth token' to store an access token")

	return nil
}

func runForgeList() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Forges) == 0 {
		fmt.Println("No forges configured. Use 'pkgforge forge add' to add one.")
		return nil
	}

	for name, forge := range cfg.Forges {
		marker := " "
		if name == cfg.Current {
			marker = "*"
		}
		auth := "no token"
		if forge.Token != "" {
			auth = string(forge.EffectiveTokenType()) + " token"
		}
		fmt.Printf("%s %-20s %s (%s)\n", marker, name, forge.URL, auth)
	}

	return nil
}

func runForgeUse(name string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, exists := cfg.Forges[name]; !exists {
		return fmt.Errorf("forge '%s' not found", name)
	}

	cfg.Current = name
	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Now using forge '%s'\n", name)
	return nil
}
