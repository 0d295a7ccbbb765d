package cmd

import (
	"fmt"

	"drg-mod-manager/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the remote mod.io catalog",
	Long: `List a page of the Deep Rock Galactic catalog on mod.io. Use --offset
and --limit to page through it, then 'add <id> --modio' to register one.`,
	Run: func(cmd *cobra.Command, _ []string) {
		offset, _ := cmd.Flags().GetInt("offset")
		limit, _ := cmd.Flags().GetInt("limit")

		_, _, client := bootstrap(".")

		mods, err := client.GetMods(offset, limit)
		if err != nil {
			logger.Log.Fatalw("Failed to fetch mod.io catalog", zap.Error(err))
		}
		if len(mods) == 0 {
			fmt.Println("No mods on this page.")
			return
		}

		fmt.Printf("%-10s %-40s %-12s %s\n", "ID", "Name", "Downloads", "Author")
		for _, mod := range mods {
			fmt.Printf("%-10d %-40s %-12d %s\n",
				mod.ID,
				truncate(mod.Name, 40),
				mod.Stats.DownloadsTotal,
				truncate(mod.SubmittedBy.Username, 20),
			)
		}
		fmt.Printf("\nShowing %d mods from offset %d\n", len(mods), offset)
	},
}

func init() {
	browseCmd.Flags().Int("offset", 0, "Catalog offset to start from")
	browseCmd.Flags().Int("limit", 20, "Number of mods to list")
	rootCmd.AddCommand(browseCmd)
}
