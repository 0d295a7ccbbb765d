package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.AppDataDir == "" {
			t.Error("Expected AppDataDir to have a default value")
		}
		if cfg.UserAgent == "" {
			t.Error("Expected UserAgent to have a default value")
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{
			AppDataDir: "/custom/data",
			GamePath:   "/games/drg/FSD.exe",
			UserAgent:  "custom-agent",
		}
		processConfigDefaults(&cfg)

		if cfg.AppDataDir != "/custom/data" {
			t.Errorf("Expected AppDataDir to stay /custom/data, got %s", cfg.AppDataDir)
		}
		if cfg.GamePath != "/games/drg/FSD.exe" {
			t.Errorf("Expected GamePath to stay set, got %s", cfg.GamePath)
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("Expected UserAgent to stay custom-agent, got %s", cfg.UserAgent)
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing app data dir", func(t *testing.T) {
		cfg := Config{AppDataDir: ""}
		err := validateAndEnsureDirectories(&cfg)
		if err == nil {
			t.Error("Expected error for missing AppDataDir")
		}
	})

	t.Run("creates directories and derives database path", func(t *testing.T) {
		dataDir := filepath.Join(tmpDir, "data")
		cfg := Config{AppDataDir: dataDir}
		err := validateAndEnsureDirectories(&cfg)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dataDir, "downloads")); os.IsNotExist(err) {
			t.Error("downloads directory was not created")
		}
		if cfg.DatabasePath != filepath.Join(dataDir, "mods.db") {
			t.Errorf("DatabasePath = %s, want %s", cfg.DatabasePath, filepath.Join(dataDir, "mods.db"))
		}
	})
}
