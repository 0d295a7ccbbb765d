package cmd

import (
	"fmt"

	"drg-mod-manager/logger"
	"drg-mod-manager/secrets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the mod.io OAuth key",
	Long: `Store, clear, or check the mod.io OAuth key. The key lives in the OS
keyring, never in a config file.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login <oauth-key>",
	Short: "Store the mod.io OAuth key in the OS keyring",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := secrets.SetOAuthKey(args[0]); err != nil {
			logger.Log.Fatalw("Failed to store OAuth key", zap.Error(err))
		}
		fmt.Println("OAuth key stored.")
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored mod.io OAuth key",
	Run: func(_ *cobra.Command, _ []string) {
		if err := secrets.DeleteOAuthKey(); err != nil {
			logger.Log.Fatalw("Failed to remove OAuth key", zap.Error(err))
		}
		fmt.Println("OAuth key removed.")
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the stored key against the mod.io API",
	Run: func(_ *cobra.Command, _ []string) {
		_, _, client := bootstrap(".")

		user, err := client.Me()
		if err != nil {
			logger.Log.Fatalw("OAuth key check failed", zap.Error(err))
		}
		fmt.Printf("Authenticated as %s (user %d)\n", user.Username, user.ID)

		games, err := client.ListGames()
		if err != nil {
			logger.Log.Warnw("Could not list accessible games", zap.Error(err))
			return
		}
		for _, game := range games {
			fmt.Printf("  game: %s (%d)\n", game.Name, game.ID)
		}
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
