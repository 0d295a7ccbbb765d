package db

import (
	"gorm.io/gorm"
)

// DefaultVersion is the placeholder version a mod carries until a real
// version is selected for it.
const DefaultVersion = "1.0.0"

// DefaultProfile always exists and cannot be deleted.
const DefaultProfile = "Default"

// Profile is a named, isolated set of install/enable status for the catalog.
type Profile struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}

// Mod is a row in the global catalog, shared by all profiles.
type Mod struct {
	gorm.Model
	ModID          string `gorm:"uniqueIndex"` // Stable identifier, e.g. "modio_12345" or "local_<uuid>"
	Name           string // Display name
	Link           string // Remote URL or local file path, disambiguated by scheme prefix
	DownloadFolder string // Storage location for all versions of this mod, relative to the app data dir
}

// ModVersion records every version string ever associated with a mod.
type ModVersion struct {
	gorm.Model
	ModID   string `gorm:"uniqueIndex:idx_mod_version"`
	Version string `gorm:"uniqueIndex:idx_mod_version"`
}

// ModStatus is the per-profile (installed, enabled, selected-version) triple
// for one mod. One table covers all profiles, keyed by (profile, mod).
type ModStatus struct {
	gorm.Model
	ProfileID       uint   `gorm:"uniqueIndex:idx_profile_mod;index"`
	ModID           string `gorm:"uniqueIndex:idx_profile_mod"`
	SelectedVersion string
	Installed       bool
	Enabled         bool
}

// ModEntry is a catalog row joined with the status it has under one profile.
// Mods without a status row appear with the defaults.
type ModEntry struct {
	ModID           string
	Name            string
	Link            string
	DownloadFolder  string
	SelectedVersion string
	Installed       bool
	Enabled         bool
}
