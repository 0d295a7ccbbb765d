package cmd

import (
	"fmt"

	"drg-mod-manager/db"
	"drg-mod-manager/logger"
	"drg-mod-manager/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Manage profiles. Each profile tracks its own installed and enabled
state for the shared mod catalog, so you can keep separate loadouts
(for example a vanilla-friendly set and a total overhaul set).`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(_ *cobra.Command, _ []string) {
		_, store, _ := bootstrap(".")
		profiles, err := store.Profiles()
		if err != nil {
			logger.Log.Fatalw("Failed to list profiles", zap.Error(err))
		}
		for _, name := range profiles {
			if name == db.DefaultProfile {
				fmt.Println(ui.Highlight(name))
				continue
			}
			fmt.Println(name)
		}
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		name := args[0]
		_, store, _ := bootstrap(".")
		if err := store.CreateProfile(name); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot create profile", zap.String("profile", name), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to create profile", zap.String("profile", name), zap.Error(err))
		}
		logger.Log.Infow("Profile created", zap.String("profile", name))
		fmt.Printf("Created profile %s\n", name)
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and its mod statuses",
	Long: `Delete a profile. The shared catalog and downloaded files are kept;
only the profile's installed/enabled bookkeeping is removed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Delete profile %s and its mod statuses? Re-run with --yes to confirm.\n", name)
			return
		}

		_, store, _ := bootstrap(".")
		if err := store.DeleteProfile(name); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot delete profile", zap.String("profile", name), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to delete profile", zap.String("profile", name), zap.Error(err))
		}
		logger.Log.Infow("Profile deleted", zap.String("profile", name))
		fmt.Printf("Deleted profile %s\n", name)
	},
}

func init() {
	profileDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}
