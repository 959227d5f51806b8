package cli

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"pkgforge/internal/config"
)

func TestCurrentForge(t *testing.T) {
	t.Run("no active forge", func(t *testing.T) {
		_, _, err := currentForge(config.CLIConfig{Forges: map[string]config.Forge{}})
		if err == nil {
			t.Fatal("expected error when no forge is active")
		}
	})

	t.Run("active forge missing from map", func(t *testing.T) {
		cfg := config.CLIConfig{Current: "gone", Forges: map[string]config.Forge{}}
		_, _, err := currentForge(cfg)
		if err == nil {
			t.Fatal("expected error when active forge is not configured")
		}
	})

	t.Run("resolves active forge", func(t *testing.T) {
		cfg := config.CLIConfig{
			Current: "work",
			Forges: map[string]config.Forge{
				"work": {URL: "https://forge.example.com"},
			},
		}
		name, forge, err := currentForge(cfg)
		if err != nil {
			t.Fatalf("currentForge() failed: %v", err)
		}
		if name != "work" || forge.URL != "https://forge.example.com" {
			t.Errorf("got %q, %+v", name, forge)
		}
	})
}

func TestEffectiveToken(t *testing.T) {
	forge := config.Forge{Token: "stored-token"}

	t.Run("stored token by default", func(t *testing.T) {
		t.Setenv(config.TokenEnvVar, "")
		if got := effectiveToken(forge); got != "stored-token" {
			t.Errorf("effectiveToken() = %q", got)
		}
	})

	t.Run("environment overrides stored", func(t *testing.T) {
		t.Setenv(config.TokenEnvVar, "env-token")
		if got := effectiveToken(forge); got != "env-token" {
			t.Errorf("effectiveToken() = %q", got)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.expected {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tar.gz", "b.tar.gz", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("glob expansion", func(t *testing.T) {
		paths := expandPatterns([]string{filepath.Join(dir, "*.tar.gz")})
		sort.Strings(paths)
		want := []string{filepath.Join(dir, "a.tar.gz"), filepath.Join(dir, "b.tar.gz")}
		if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
			t.Errorf("expandPatterns() = %v, want %v", paths, want)
		}
	})

	t.Run("non-matching argument kept verbatim", func(t *testing.T) {
		paths := expandPatterns([]string{filepath.Join(dir, "missing.bin")})
		if len(paths) != 1 || paths[0] != filepath.Join(dir, "missing.bin") {
			t.Errorf("expandPatterns() = %v", paths)
		}
	})

	t.Run("literal path passes through", func(t *testing.T) {
		literal := filepath.Join(dir, "c.txt")
		paths := expandPatterns([]string{literal})
		if len(paths) != 1 || paths[0] != literal {
			t.Errorf("expandPatterns() = %v", paths)
		}
	})
}
