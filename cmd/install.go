package cmd

import (
	"fmt"

	"drg-mod-manager/installer"
	"drg-mod-manager/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var installCmd = &cobra.Command{
	Use:   "install <mod-id>",
	Short: "Install a mod's selected version under a profile",
	Long: `Copy or download the mod's selected version into its version directory
and mark it installed under the chosen profile.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modID := args[0]
		cfg, store, client := bootstrap(".")
		profile := profileFlag(cmd, store)

		entry, err := store.Entry(profile, modID)
		if err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot install", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to look up mod", zap.String("mod_id", modID), zap.Error(err))
		}

		// Make sure the profile has a status row before flipping flags
		if err := store.AddMod(profile, entry); err != nil {
			logger.Log.Fatalw("Failed to prepare status row", zap.String("mod_id", modID), zap.Error(err))
		}

		inst := installer.New(cfg.AppDataDir, client)
		if err := inst.Install(logger.Log, entry); err != nil {
			logger.Log.Fatalw("Install failed", zap.String("mod_id", modID), zap.Error(err))
		}

		if err := store.SetInstalled(profile, modID, true); err != nil {
			logger.Log.Fatalw("Installed files but failed to record status", zap.String("mod_id", modID), zap.Error(err))
		}

		logger.Log.Infow("Mod installed",
			zap.String("mod_id", modID),
			zap.String("version", entry.SelectedVersion),
			zap.String("profile", profile),
		)
		fmt.Printf("Installed %s %s in profile %s\n", entry.Name, entry.SelectedVersion, profile)
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <mod-id>",
	Short: "Mark a mod not installed under a profile",
	Long: `Clear the installed (and enabled) flags for a mod under the chosen
profile. Downloaded files are kept; use 'versions delete' to remove them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modID := args[0]
		_, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)

		if err := store.SetInstalled(profile, modID, false); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot uninstall", zap.String("mod_id", modID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to uninstall", zap.String("mod_id", modID), zap.Error(err))
		}

		logger.Log.Infow("Mod uninstalled", zap.String("mod_id", modID), zap.String("profile", profile))
		fmt.Printf("Uninstalled %s from profile %s\n", modID, profile)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}
