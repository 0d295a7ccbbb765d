package db

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile names end up in filesystem paths and user-facing output, so they
// are restricted to a safe character set at creation time.
var profileNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]{0,63}$`)

// CreateProfile registers a new profile. Returns ErrInvalidProfileName for
// names outside the allowed character set and ErrDuplicateProfile if the
// name is already registered.
func (s *Store) CreateProfile(name string) error {
	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Profile{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("checking profile %q: %w", name, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateProfile, name)
		}
		if err := tx.Create(&Profile{Name: name}).Error; err != nil {
			return fmt.Errorf("creating profile %q: %w", name, err)
		}
		return nil
	})
}

// DeleteProfile removes a profile and all of its status rows. Returns
// ErrProtectedProfile for the Default profile and ErrUnknownProfile if the
// name is not registered.
func (s *Store) DeleteProfile(name string) error {
	if name == DefaultProfile {
		return ErrProtectedProfile
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileByName(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&ModStatus{}).Error; err != nil {
			return fmt.Errorf("deleting statuses of profile %q: %w", name, err)
		}
		if err := tx.Unscoped().Delete(&profile).Error; err != nil {
			return fmt.Errorf("deleting profile %q: %w", name, err)
		}
		return nil
	})
}

// Profiles returns all profile names, lexicographically sorted.
func (s *Store) Profiles() ([]string, error) {
	var names []string
	if err := s.db.Model(&Profile{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return names, nil
}

// ProfileExists reports whether a profile with the given name is registered.
func (s *Store) ProfileExists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&Profile{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking profile %q: %w", name, err)
	}
	return count > 0, nil
}

// Mods returns every catalog mod decorated with its status under the given
// profile. Mods with no status row appear as not installed, not enabled,
// with the placeholder version. Ordered by mod name.
func (s *Store) Mods(profileName string) ([]ModEntry, error) {
	profile, err := s.profileByName(s.db, profileName)
	if err != nil {
		return nil, err
	}

	var entries []ModEntry
	result := s.db.Model(&Mod{}).
		Select(`mods.mod_id, mods.name, mods.link, mods.download_folder,
			COALESCE(statuses.selected_version, ?) AS selected_version,
			COALESCE(statuses.installed, 0) AS installed,
			COALESCE(statuses.enabled, 0) AS enabled`, DefaultVersion).
		Joins(`LEFT JOIN mod_statuses statuses
			ON statuses.mod_id = mods.mod_id
			AND statuses.profile_id = ?
			AND statuses.deleted_at IS NULL`, profile.ID).
		Order("mods.name").
		Scan(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("listing mods for profile %q: %w", profileName, result.Error)
	}
	return entries, nil
}

// AddMod upserts the catalog row, appends the version to the history if it
// is new and lazily inserts a status row under the given profile. An
// existing status row is never overwritten. Runs in one transaction so a
// crash cannot leave the catalog and status out of step.
func (s *Store) AddMod(profileName string, entry ModEntry) error {
	if entry.SelectedVersion == "" {
		entry.SelectedVersion = DefaultVersion
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileByName(tx, profileName)
		if err != nil {
			return err
		}

		mod := Mod{
			ModID:          entry.ModID,
			Name:           entry.Name,
			Link:           entry.Link,
			DownloadFolder: entry.DownloadFolder,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mod_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "link", "download_folder", "updated_at"}),
		}).Create(&mod)
		if result.Error != nil {
			return fmt.Errorf("upserting mod %q: %w", entry.ModID, result.Error)
		}

		version := ModVersion{ModID: entry.ModID, Version: entry.SelectedVersion}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&version)
		if result.Error != nil {
			return fmt.Errorf("recording version %q of mod %q: %w", entry.SelectedVersion, entry.ModID, result.Error)
		}

		status := ModStatus{
			ProfileID:       profile.ID,
			ModID:           entry.ModID,
			SelectedVersion: entry.SelectedVersion,
			Installed:       entry.Installed,
			Enabled:         entry.Enabled,
		}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&status)
		if result.Error != nil {
			return fmt.Errorf("creating status for mod %q in profile %q: %w", entry.ModID, profileName, result.Error)
		}
		return nil
	})
}

// statusByMod looks up the status row for one mod under one profile,
// mapping absence to ErrUnknownMod.
func (s *Store) statusByMod(tx *gorm.DB, profileName, modID string) (ModStatus, error) {
	var status ModStatus
	profile, err := s.profileByName(tx, profileName)
	if err != nil {
		return status, err
	}
	result := tx.Where("profile_id = ? AND mod_id = ?", profile.ID, modID).First(&status)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return status, fmt.Errorf("%w: %s in profile %s", ErrUnknownMod, modID, profileName)
		}
		return status, fmt.Errorf("querying status of mod %q: %w", modID, result.Error)
	}
	return status, nil
}

// SetInstalled updates the installed flag for a mod under the given
// profile. Marking a mod not installed also disables it, so an enabled mod
// is always backed by files on disk. Returns ErrUnknownMod if the mod has
// no status row in that profile.
func (s *Store) SetInstalled(profileName, modID string, installed bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := s.statusByMod(tx, profileName, modID)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{"installed": installed}
		if !installed {
			updates["enabled"] = false
		}
		if err := tx.Model(&status).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating installed flag of mod %q: %w", modID, err)
		}
		return nil
	})
}

// SetEnabled updates the enabled flag for a mod under the given profile.
// Enabling a mod that is not installed fails with ErrNotInstalled.
func (s *Store) SetEnabled(profileName, modID string, enabled bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := s.statusByMod(tx, profileName, modID)
		if err != nil {
			return err
		}
		if enabled && !status.Installed {
			return fmt.Errorf("%w: %s", ErrNotInstalled, modID)
		}
		if err := tx.Model(&status).Update("enabled", enabled).Error; err != nil {
			return fmt.Errorf("updating enabled flag of mod %q: %w", modID, err)
		}
		return nil
	})
}

// SetStatus updates both flags at once, under the same not-installed rule
// as SetEnabled.
func (s *Store) SetStatus(profileName, modID string, installed, enabled bool) error {
	if enabled && !installed {
		return fmt.Errorf("%w: %s", ErrNotInstalled, modID)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := s.statusByMod(tx, profileName, modID)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{"installed": installed, "enabled": enabled}
		if err := tx.Model(&status).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating status of mod %q: %w", modID, err)
		}
		return nil
	})
}

// SetSelectedVersion updates the selected version for a mod under the given
// profile. Returns ErrUnknownMod if the mod has no status row there.
func (s *Store) SetSelectedVersion(profileName, modID, version string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := s.statusByMod(tx, profileName, modID)
		if err != nil {
			return err
		}
		if err := tx.Model(&status).Update("selected_version", version).Error; err != nil {
			return fmt.Errorf("updating selected version of mod %q: %w", modID, err)
		}
		return nil
	})
}

// Versions returns every version string recorded for a mod, oldest first.
func (s *Store) Versions(modID string) ([]string, error) {
	var versions []string
	err := s.db.Model(&ModVersion{}).
		Where("mod_id = ?", modID).
		Order("created_at").
		Pluck("version", &versions).Error
	if err != nil {
		return nil, fmt.Errorf("listing versions of mod %q: %w", modID, err)
	}
	return versions, nil
}

// HasVersion reports whether a version is recorded in the history of a mod.
func (s *Store) HasVersion(modID, version string) (bool, error) {
	var count int64
	err := s.db.Model(&ModVersion{}).
		Where("mod_id = ? AND version = ?", modID, version).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking version %q of mod %q: %w", version, modID, err)
	}
	return count > 0, nil
}

// DeleteVersion removes a version from the history of a mod. Called when
// the version directory is deleted from disk, so the history does not
// accumulate orphaned rows. Returns ErrUnknownVersion if the pair is not
// recorded.
func (s *Store) DeleteVersion(modID, version string) error {
	result := s.db.Unscoped().
		Where("mod_id = ? AND version = ?", modID, version).
		Delete(&ModVersion{})
	if result.Error != nil {
		return fmt.Errorf("deleting version %q of mod %q: %w", version, modID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s of mod %s", ErrUnknownVersion, version, modID)
	}
	return nil
}

// ModByID returns the catalog row for a mod, or ErrUnknownMod.
func (s *Store) ModByID(modID string) (Mod, error) {
	var mod Mod
	result := s.db.Where("mod_id = ?", modID).First(&mod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return mod, fmt.Errorf("%w: %s", ErrUnknownMod, modID)
		}
		return mod, fmt.Errorf("querying mod %q: %w", modID, result.Error)
	}
	return mod, nil
}

// Entry returns one mod joined with its status under the given profile.
func (s *Store) Entry(profileName, modID string) (ModEntry, error) {
	mod, err := s.ModByID(modID)
	if err != nil {
		return ModEntry{}, err
	}
	entry := ModEntry{
		ModID:           mod.ModID,
		Name:            mod.Name,
		Link:            mod.Link,
		DownloadFolder:  mod.DownloadFolder,
		SelectedVersion: DefaultVersion,
	}
	status, err := s.statusByMod(s.db, profileName, modID)
	if err != nil {
		if errors.Is(err, ErrUnknownMod) {
			return entry, nil
		}
		return ModEntry{}, err
	}
	entry.SelectedVersion = status.SelectedVersion
	entry.Installed = status.Installed
	entry.Enabled = status.Enabled
	return entry, nil
}
