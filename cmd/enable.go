package cmd

import (
	"fmt"

	"drg-mod-manager/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var enableCmd = &cobra.Command{
	Use:   "enable <mod-id>",
	Short: "Enable an installed mod under a profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <mod-id>",
	Short: "Disable a mod under a profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(cmd, args[0], false)
	},
}

func setEnabled(cmd *cobra.Command, modID string, enabled bool) {
	_, store, _ := bootstrap(".")
	profile := profileFlag(cmd, store)

	if err := store.SetEnabled(profile, modID, enabled); err != nil {
		if msg := classifyStoreError(err); msg != "" {
			logger.Log.Fatalw("Cannot change enabled state", zap.String("mod_id", modID), zap.String("reason", msg))
		}
		logger.Log.Fatalw("Failed to change enabled state", zap.String("mod_id", modID), zap.Error(err))
	}

	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	logger.Log.Infow("Enabled state changed",
		zap.String("mod_id", modID),
		zap.Bool("enabled", enabled),
		zap.String("profile", profile),
	)
	fmt.Printf("%s %s in profile %s\n", state, modID, profile)
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}
