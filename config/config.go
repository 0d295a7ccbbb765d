package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	AppDataDir   string `mapstructure:"APP_DATA_DIR"`  // Where mod files and the database live
	GamePath     string `mapstructure:"GAME_PATH"`     // Path to the game executable
	ModioAPIKey  string `mapstructure:"MODIO_API_KEY"` // Fallback when the OS keyring holds no token
	UserAgent    string `mapstructure:"USERAGENT"`
	DatabasePath string `mapstructure:"-"` // Not from env, derived
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vip_err := viper.ReadInConfig()
	if _, ok := vip_err.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vip_err != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vip_err)
	}

	// Bind environment variables automatically.
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"app_data_dir":  "APP_DATA_DIR",
		"game_path":     "GAME_PATH",
		"modio_api_key": "MODIO_API_KEY",
		"useragent":     "USERAGENT",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "var", env, "error", bindErr)
		}
	}

	if vip_err := viper.Unmarshal(&config); vip_err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vip_err)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in defaults for values not set by the user.
func processConfigDefaults(cfg *Config) {
	if cfg.AppDataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.AppDataDir = filepath.Join(base, "drg-mod-manager")
		slog.Info("APP_DATA_DIR not set, using default", "path", cfg.AppDataDir)
	}
	if cfg.GamePath == "" {
		cfg.GamePath = findGamePath()
		if cfg.GamePath == "" {
			slog.Warn("GAME_PATH not set and no installation found, mod deployment disabled")
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "drg-mod-manager/dev (unknown-user)"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
}

// validateAndEnsureDirectories creates the application data layout.
func validateAndEnsureDirectories(cfg *Config) error {
	if cfg.AppDataDir == "" {
		slog.Error("APP_DATA_DIR is not set")
		return fmt.Errorf("APP_DATA_DIR is required")
	}

	for _, dir := range []string{cfg.AppDataDir, filepath.Join(cfg.AppDataDir, "downloads")} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Info("Directory does not exist, creating it", "path", dir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				slog.Error("Failed to create directory", "path", dir, "error", err)
				return err
			}
		} else if err != nil {
			slog.Error("Failed to check directory", "path", dir, "error", err)
			return err
		}
	}

	// Derive DatabasePath (next to the mod files for portability)
	cfg.DatabasePath = filepath.Join(cfg.AppDataDir, "mods.db")

	return nil
}

// findGamePath probes the usual Steam and Game Pass install locations.
func findGamePath() string {
	possiblePaths := []string{
		`C:\Program Files (x86)\Steam\steamapps\common\Deep Rock Galactic\FSD.exe`,
		`C:\Program Files\Steam\steamapps\common\Deep Rock Galactic\FSD.exe`,
		"~/.steam/steam/steamapps/common/Deep Rock Galactic/FSD.exe",
		"~/.local/share/Steam/steamapps/common/Deep Rock Galactic/FSD.exe",
		`C:\Program Files\WindowsApps\CoffeeStainStudios.DeepRockGalactic`,
	}

	for _, path := range possiblePaths {
		if len(path) > 1 && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			path = filepath.Join(home, path[2:])
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
