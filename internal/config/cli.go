package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TokenType selects how a forge token is presented to the API.
type TokenType string

const (
	TokenTypePrivate TokenType = "private" // personal access token header
	TokenTypeOAuth   TokenType = "oauth"   // OAuth bearer token
	TokenTypeJob     TokenType = "job"     // CI job token header
)

// Forge is one configured forge instance.
type Forge struct {
	URL       string    `toml:"url"`
	Token     string    `toml:"token,omitempty"`
	TokenType TokenType `toml:"token_type,omitempty"`
}

// EffectiveTokenType defaults to a private access token.
func (f Forge) EffectiveTokenType() TokenType {
	if f.TokenType == "" {
		return TokenTypePrivate
	}
	return f.TokenType
}

// ValidateTokenType rejects unknown token types.
func ValidateTokenType(t TokenType) error {
	switch t {
	case "", TokenTypePrivate, TokenTypeOAuth, TokenTypeJob:
		return nil
	default:
		return fmt.Errorf("unknown token type %q (expected private, oauth or job)", t)
	}
}

// CLIConfig is the on-disk CLI configuration.
type CLIConfig struct {
	Current string           `toml:"current"`
	Forges  map[string]Forge `toml:"forges"`
}

// ConfigDir returns the CLI config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pkgforge"), nil
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadCLI loads CLI configuration from ~/.pkgforge/config.toml.
func LoadCLI() (CLIConfig, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		// Empty config when the file doesn't exist yet.
		return CLIConfig{Forges: make(map[string]Forge)}, nil
	}
	if err != nil {
		return CLIConfig{}, err
	}

	var config CLIConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return CLIConfig{}, err
	}

	if config.Forges == nil {
		config.Forges = make(map[string]Forge)
	}

	return config, nil
}

// SaveCLI saves CLI configuration to ~/.pkgforge/config.toml.
func SaveCLI(config CLIConfig) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	// Tokens live in here.
	return os.WriteFile(configPath, data, 0o600)
}
