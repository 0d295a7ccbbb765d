package cmd

import (
	"errors"

	"drg-mod-manager/config"
	"drg-mod-manager/db"
	"drg-mod-manager/logger"
	"drg-mod-manager/modio"
	"drg-mod-manager/secrets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, *db.Store, *modio.Client) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	store, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalw("Failed to initialize database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	client, err := modio.NewClient(cfg, loadOAuthKey(cfg))
	if err != nil {
		logger.Log.Fatalw("Failed to create mod.io client", zap.Error(err))
	}

	return cfg, store, client
}

// loadOAuthKey prefers the OS keyring and falls back to MODIO_API_KEY.
func loadOAuthKey(cfg config.Config) string {
	key, err := secrets.GetOAuthKey()
	if err != nil {
		logger.Log.Warnw("Failed to read OAuth key from keyring, falling back to environment", zap.Error(err))
	}
	if key == "" {
		key = cfg.ModioAPIKey
	}
	return key
}

// profileFlag reads the --profile flag and validates the profile exists.
func profileFlag(cmd *cobra.Command, store *db.Store) string {
	name, _ := cmd.Flags().GetString("profile")
	exists, err := store.ProfileExists(name)
	if err != nil {
		logger.Log.Fatalw("Failed to check profile", zap.String("profile", name), zap.Error(err))
	}
	if !exists {
		logger.Log.Fatalw("Unknown profile", zap.String("profile", name))
	}
	return name
}

// classifyStoreError maps a store error to a short user-facing message, or
// "" when the error is an unexpected storage fault.
func classifyStoreError(err error) string {
	switch {
	case errors.Is(err, db.ErrDuplicateProfile):
		return "a profile with that name already exists"
	case errors.Is(err, db.ErrProtectedProfile):
		return "the Default profile cannot be deleted"
	case errors.Is(err, db.ErrUnknownProfile):
		return "no such profile"
	case errors.Is(err, db.ErrInvalidProfileName):
		return "profile names may only contain letters, digits, spaces, '-' and '_'"
	case errors.Is(err, db.ErrUnknownMod):
		return "no such mod in this profile"
	case errors.Is(err, db.ErrNotInstalled):
		return "mod must be installed before it can be enabled"
	case errors.Is(err, db.ErrUnknownVersion):
		return "no such version"
	default:
		return ""
	}
}

// truncate shortens a string for fixed-width table output.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
