package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"drg-mod-manager/db"
	"drg-mod-manager/logger"
	"drg-mod-manager/modio"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addCmd = &cobra.Command{
	Use:   "add <path-or-url>",
	Short: "Register a mod in the catalog",
	Long: `Register a mod in the shared catalog and give it a status row under the
chosen profile. The argument is either a local archive path, a mod.io
browse URL, or (with --modio) a numeric mod.io mod ID.

Examples:
  drg-mod-manager add /tmp/ladders.zip --name "Fast Ladders" --version 1.2
  drg-mod-manager add https://mod.io/g/drg/m/mod-hub
  drg-mod-manager add 12345 --modio`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, store, client := bootstrap(".")
		profile := profileFlag(cmd, store)

		fromModio, _ := cmd.Flags().GetBool("modio")
		name, _ := cmd.Flags().GetString("name")
		version, _ := cmd.Flags().GetString("version")
		modID, _ := cmd.Flags().GetString("id")
		folder, _ := cmd.Flags().GetString("folder")

		var entry db.ModEntry
		switch {
		case fromModio:
			id, err := strconv.Atoi(args[0])
			if err != nil {
				logger.Log.Fatalw("--modio requires a numeric mod ID", zap.String("argument", args[0]))
			}
			entry = fetchRemoteEntry(client, id)
		case strings.Contains(args[0], "mod.io/"):
			entry = entryFromModURL(client, args[0])
		default:
			entry = entryFromLocalPath(args[0], modID, name, folder)
		}

		if name != "" {
			entry.Name = name
		}
		if version != "" {
			entry.SelectedVersion = version
		}

		if err := store.AddMod(profile, entry); err != nil {
			if msg := classifyStoreError(err); msg != "" {
				logger.Log.Fatalw("Cannot add mod", zap.String("mod_id", entry.ModID), zap.String("reason", msg))
			}
			logger.Log.Fatalw("Failed to add mod", zap.String("mod_id", entry.ModID), zap.Error(err))
		}

		logger.Log.Infow("Mod registered",
			zap.String("mod_id", entry.ModID),
			zap.String("name", entry.Name),
			zap.String("profile", profile),
		)
		fmt.Printf("Registered %s (%s) in profile %s\n", entry.Name, entry.ModID, profile)
	},
}

// fetchRemoteEntry pulls mod metadata from mod.io and converts it.
func fetchRemoteEntry(client *modio.Client, id int) db.ModEntry {
	mod, err := client.GetMod(id)
	if err != nil {
		logger.Log.Fatalw("Failed to fetch mod from mod.io", zap.Int("mod_id", id), zap.Error(err))
	}
	return modio.ConvertToEntry(*mod)
}

// entryFromModURL resolves a mod.io browse URL against the catalog API.
func entryFromModURL(client *modio.Client, raw string) db.ModEntry {
	_, slug, ok := modio.ParseModURL(raw)
	if !ok {
		logger.Log.Fatalw("Not a supported mod.io URL", zap.String("url", raw))
	}

	// The public listing is the only slug lookup the API offers here, so
	// page through it until the slug matches.
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		mods, err := client.GetMods(offset, pageSize)
		if err != nil {
			logger.Log.Fatalw("Failed to search mod.io catalog", zap.Error(err))
		}
		if len(mods) == 0 {
			break
		}
		for _, m := range mods {
			if m.NameID == slug {
				return modio.ConvertToEntry(m)
			}
		}
	}
	logger.Log.Fatalw("Mod not found on mod.io", zap.String("slug", slug))
	return db.ModEntry{} // unreachable
}

// entryFromLocalPath registers a local archive, minting an ID when the
// user did not supply one.
func entryFromLocalPath(path, modID, name, folder string) db.ModEntry {
	if modID == "" {
		modID = "local_" + uuid.NewString()
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if folder == "" {
		folder = "downloads"
	}
	return db.ModEntry{
		ModID:           modID,
		Name:            name,
		Link:            path,
		DownloadFolder:  folder,
		SelectedVersion: db.DefaultVersion,
	}
}

func init() {
	addCmd.Flags().Bool("modio", false, "Treat the argument as a numeric mod.io mod ID")
	addCmd.Flags().String("name", "", "Display name (defaults to the file or remote name)")
	addCmd.Flags().String("version", "", "Version to record (defaults to "+db.DefaultVersion+")")
	addCmd.Flags().String("id", "", "Catalog ID (defaults to a generated local ID)")
	addCmd.Flags().String("folder", "", "Download folder relative to the app data dir (defaults to downloads)")
	rootCmd.AddCommand(addCmd)
}
