package cmd

import (
	"github.com/spf13/cobra"
)

// defaultCmd represents the command that runs when no subcommand is specified
var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Default command when no subcommand is provided",
	Long:  `Launches the interactive interface by default.`,
	Run: func(cmd *cobra.Command, args []string) {
		guiCmd.Run(guiCmd, []string{})
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
	cobra.OnInitialize(func() {
		if len(rootCmd.Commands()) > 0 && len(rootCmd.Flags().Args()) == 0 {
			rootCmd.SetArgs([]string{"default"})
		}
	})
}
