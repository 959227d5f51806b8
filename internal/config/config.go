package config

import "os"

// TokenEnvVar overrides the configured forge token when set.
const TokenEnvVar = "PKGFORGE_TOKEN"

// TokenFromEnv returns the token from the environment, or "" when unset.
func TokenFromEnv() string {
	return os.Getenv(TokenEnvVar)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
