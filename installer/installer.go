package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"drg-mod-manager/db"
	"drg-mod-manager/modio"

	"go.uber.org/zap"
)

// Installer materializes mod files under a version-specific directory:
// <AppDataDir>/<download_folder>/<selected_version>/. It does no database
// work; the caller records the resulting installed flag.
type Installer struct {
	AppDataDir string
	Client     *modio.Client
}

func New(appDataDir string, client *modio.Client) *Installer {
	return &Installer{AppDataDir: appDataDir, Client: client}
}

// VersionDir returns the directory holding one version of a mod.
func (i *Installer) VersionDir(entry db.ModEntry) string {
	return filepath.Join(i.AppDataDir, entry.DownloadFolder, entry.SelectedVersion)
}

// Install copies or downloads the mod into its version directory. Links
// with an http/https scheme are downloaded; everything else is treated as
// a local file path.
func (i *Installer) Install(log *zap.SugaredLogger, entry db.ModEntry) error {
	versionDir := i.VersionDir(entry)
	if err := os.MkdirAll(versionDir, 0755); err != nil {
		return fmt.Errorf("failed to create version directory '%s': %w", versionDir, err)
	}

	if strings.HasPrefix(entry.Link, "http://") || strings.HasPrefix(entry.Link, "https://") {
		return i.downloadFromURL(log, entry, versionDir)
	}
	return i.copyLocalFile(log, entry, versionDir)
}

func (i *Installer) downloadFromURL(log *zap.SugaredLogger, entry db.ModEntry, versionDir string) error {
	fileName := filepath.Base(entry.Link)
	if fileName == "." || fileName == "/" {
		fileName = entry.ModID + ".zip"
	}
	destPath := filepath.Join(versionDir, fileName)

	log.Infow("Downloading mod",
		zap.String("mod_id", entry.ModID),
		zap.String("url", entry.Link),
		zap.String("destination", destPath),
	)
	if err := i.Client.DownloadFile(log, destPath, entry.Link); err != nil {
		return fmt.Errorf("failed to download mod '%s': %w", entry.ModID, err)
	}
	return nil
}

func (i *Installer) copyLocalFile(log *zap.SugaredLogger, entry db.ModEntry, versionDir string) error {
	source, err := os.Open(entry.Link)
	if err != nil {
		return fmt.Errorf("source file does not exist: %s: %w", entry.Link, err)
	}
	defer source.Close()

	destPath := filepath.Join(versionDir, filepath.Base(entry.Link))
	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", destPath, err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, source); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to copy mod file: %w", err)
	}

	log.Infow("Copied mod file",
		zap.String("mod_id", entry.ModID),
		zap.String("destination", destPath),
	)
	return nil
}

// RemoveVersion deletes the version directory of a mod. The caller cascades
// the version-history row via the store.
func (i *Installer) RemoveVersion(log *zap.SugaredLogger, entry db.ModEntry) error {
	versionDir := i.VersionDir(entry)
	if _, err := os.Stat(versionDir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(versionDir); err != nil {
		return fmt.Errorf("failed to delete version directory '%s': %w", versionDir, err)
	}
	log.Infow("Deleted version directory",
		zap.String("mod_id", entry.ModID),
		zap.String("version", entry.SelectedVersion),
	)
	return nil
}

// IsInstalled reports whether the version directory of a mod exists and is
// not empty.
func (i *Installer) IsInstalled(entry db.ModEntry) bool {
	names, err := os.ReadDir(i.VersionDir(entry))
	return err == nil && len(names) > 0
}
