package cmd

import (
	"fmt"

	"drg-mod-manager/installer"
	"drg-mod-manager/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile a profile's installed flags with the files on disk",
	Long: `Check every mod marked installed under the chosen profile against its
version directory, and clear the flag where the files are gone (for
example after a manual cleanup). Mods whose files exist but are marked
not installed are reported, not changed.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, store, _ := bootstrap(".")
		profile := profileFlag(cmd, store)

		mods, err := store.Mods(profile)
		if err != nil {
			logger.Log.Fatalw("Failed to list mods", zap.String("profile", profile), zap.Error(err))
		}

		inst := installer.New(cfg.AppDataDir, nil)
		cleared := 0
		orphaned := 0
		for _, mod := range mods {
			onDisk := inst.IsInstalled(mod)
			switch {
			case mod.Installed && !onDisk:
				if err := store.SetInstalled(profile, mod.ModID, false); err != nil {
					logger.Log.Warnw("Failed to clear installed flag",
						zap.String("mod_id", mod.ModID),
						zap.Error(err),
					)
					continue
				}
				logger.Log.Infow("Cleared installed flag, files missing",
					zap.String("mod_id", mod.ModID),
					zap.String("version", mod.SelectedVersion),
				)
				cleared++
			case !mod.Installed && onDisk:
				fmt.Printf("%s %s has files on disk but is not marked installed\n", mod.ModID, mod.SelectedVersion)
				orphaned++
			}
		}

		fmt.Printf("Verified %d mods in profile %s: %d flags cleared, %d untracked version directories\n",
			len(mods), profile, cleared, orphaned)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
