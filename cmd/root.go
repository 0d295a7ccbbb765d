package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drg-mod-manager",
	Short: "Manage Deep Rock Galactic mods and profiles",
	Long: `A mod manager for Deep Rock Galactic.

Mods live in a shared catalog; each profile tracks its own installed and
enabled state for every mod in it. Mod files are kept in version-specific
directories under the application data directory.`,
}

func init() {
	rootCmd.PersistentFlags().StringP("profile", "p", "Default", "Profile to operate on")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
