package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"pkgforge/internal/config"
	"pkgforge/internal/registry"
	"pkgforge/internal/session"
)

// currentForge returns the active forge configuration.
func currentForge(cfg config.CLIConfig) (string, config.Forge, error) {
	name := cfg.Current

	if name == "" {
		return "", config.Forge{}, fmt.Errorf("no active forge configured. Use 'pkgforge forge add' to add one")
	}

	forge, exists := cfg.Forges[name]
	if !exists {
		return "", config.Forge{}, fmt.Errorf("active forge '%s' not found", name)
	}

	return name, forge, nil
}

// effectiveToken returns the token to use for API calls.
// Priority: 1) PKGFORGE_TOKEN environment variable, 2) stored forge token.
// An empty result means unauthenticated access.
func effectiveToken(forge config.Forge) string {
	if token := config.TokenFromEnv(); token != "" {
		return token
	}
	return forge.Token
}

// newClient builds a registry client for the current forge.
func newClient() (*registry.Client, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	name, forge, err := currentForge(cfg)
	if err != nil {
		return nil, err
	}

	token := effectiveToken(forge)

	opts := session.Options{}
	switch forge.EffectiveTokenType() {
	case config.TokenTypeOAuth:
		opts.OAuthToken = token
	case config.TokenTypeJob:
		opts.JobToken = token
	default:
		opts.PrivateToken = token
	}

	var logger *zerolog.Logger
	if verbose {
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger = &l
		opts.Logger = &l
		fmt.Printf("Using forge '%s' (%s)\n", name, forge.URL)
	}

	sess := session.New(forge.URL, opts)
	return registry.NewClient(sess, logger), nil
}

// formatBytes renders a byte count as a human-readable string.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
