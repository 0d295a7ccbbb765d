package cmd

import (
	"fmt"

	"drg-mod-manager/logger"
	"drg-mod-manager/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog mods with their status under a profile",
	Long: `List every mod in the catalog together with its selected version and
installed/enabled state under the chosen profile. Mods that have never
been touched under that profile show the defaults.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)
		installedOnly, _ := cmd.Flags().GetBool("installed")

		mods, err := store.Mods(profile)
		if err != nil {
			logger.Log.Fatalw("Failed to list mods", zap.String("profile", profile), zap.Error(err))
		}

		fmt.Printf("Profile: %s\n\n", ui.Highlight(profile))
		if len(mods) == 0 {
			fmt.Println("No mods in the catalog. Use 'add' or 'browse' to register some.")
			return
		}

		fmt.Printf("%-24s %-30s %-10s %s\n", "ID", "Name", "Version", "Status")
		shown := 0
		for _, mod := range mods {
			if installedOnly && !mod.Installed {
				continue
			}
			// Status columns go last so the colored labels don't break alignment
			fmt.Printf("%-24s %-30s %-10s %s %s\n",
				truncate(mod.ModID, 24),
				truncate(mod.Name, 30),
				truncate(mod.SelectedVersion, 10),
				ui.InstalledLabel(mod.Installed),
				ui.EnabledLabel(mod.Enabled),
			)
			shown++
		}
		if installedOnly && shown == 0 {
			fmt.Println("No installed mods in this profile.")
		}
	},
}

func init() {
	listCmd.Flags().Bool("installed", false, "Only show installed mods")
	rootCmd.AddCommand(listCmd)
}
