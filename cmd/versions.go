package cmd

import (
	"fmt"

	"drg-mod-manager/db"
	"drg-mod-manager/installer"
	"drg-mod-manager/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <mod-id>",
	Short: "List the recorded versions of a mod",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modID := args[0]
		_, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)

		entry, err := store.Entry(profile, modID)
		if err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot list versions", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to look up mod", zap.String("mod_id", modID), zap.Error(err))
		}

		versions, err := store.Versions(modID)
		if err != nil {
			logger.Log.Fatalw("Failed to list versions", zap.String("mod_id", modID), zap.Error(err))
		}

		fmt.Printf("Versions of %s:\n", entry.Name)
		for _, v := range versions {
			marker := "  "
			if v == entry.SelectedVersion {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, v)
		}
	},
}

var versionsSelectCmd = &cobra.Command{
	Use:   "select <mod-id> <version>",
	Short: "Select which version a profile uses",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modID, version := args[0], args[1]
		cfg, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)

		known, err := store.HasVersion(modID, version)
		if err != nil {
			logger.Log.Fatalw("Failed to check version history", zap.String("mod_id", modID), zap.Error(err))
		}
		if !known {
			logger.Log.Fatalw("Version is not in the history of this mod",
				zap.String("mod_id", modID),
				zap.String("version", version),
			)
		}

		if err := store.SetSelectedVersion(profile, modID, version); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot select version", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to select version", zap.String("mod_id", modID), zap.Error(err))
		}

		// Selecting a version the profile has no files for drops it back
		// to not-installed until the user installs again.
		inst := installer.New(cfg.AppDataDir, nil)
		entry, err := store.Entry(profile, modID)
		if err == nil && !inst.IsInstalled(entry) {
			if err := store.SetInstalled(profile, modID, false); err != nil {
				logger.Log.Warnw("Failed to clear installed flag", zap.String("mod_id", modID), zap.Error(err))
			}
		}

		logger.Log.Infow("Version selected",
			zap.String("mod_id", modID),
			zap.String("version", version),
			zap.String("profile", profile),
		)
		fmt.Printf("Profile %s now uses %s %s\n", profile, modID, version)
	},
}

var versionsDeleteCmd = &cobra.Command{
	Use:   "delete <mod-id> <version>",
	Short: "Delete a version's files and history entry",
	Long: `Remove the version directory from disk and the matching row from the
version history, so the history never points at files that are gone.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modID, version := args[0], args[1]
		cfg, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)

		entry, err := store.Entry(profile, modID)
		if err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot delete version", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to look up mod", zap.String("mod_id", modID), zap.Error(err))
		}

		inst := installer.New(cfg.AppDataDir, nil)
		if err := removeVersion(logger.Log, store, inst, profile, entry, version); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot delete version", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to delete version", zap.String("mod_id", modID), zap.Error(err))
		}

		logger.Log.Infow("Version deleted", zap.String("mod_id", modID), zap.String("version", version))
		fmt.Printf("Deleted %s %s\n", modID, version)
	},
}

// removeVersion deletes a version's files and history row. If the profile's
// selected version is the one being deleted, the installed flag is cleared
// too, so the status never points at files that are gone.
func removeVersion(log *zap.SugaredLogger, store *db.Store, inst *installer.Installer, profile string, entry db.ModEntry, version string) error {
	selected := entry.SelectedVersion
	entry.SelectedVersion = version
	if err := inst.RemoveVersion(log, entry); err != nil {
		return err
	}
	if err := store.DeleteVersion(entry.ModID, version); err != nil {
		return err
	}
	if selected == version {
		return store.SetInstalled(profile, entry.ModID, false)
	}
	return nil
}

func init() {
	versionsCmd.AddCommand(versionsSelectCmd)
	versionsCmd.AddCommand(versionsDeleteCmd)
	rootCmd.AddCommand(versionsCmd)
}
