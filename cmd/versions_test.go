package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"drg-mod-manager/db"
	"drg-mod-manager/installer"
)

func TestRemoveVersion(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "mods.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	appData := t.TempDir()
	inst := installer.New(appData, nil)
	log := zap.NewNop().Sugar()

	entry := db.ModEntry{ModID: "local_cascade", Name: "Cascade", Link: "/tmp/cascade.zip", DownloadFolder: "downloads", SelectedVersion: "1.2"}
	if err := store.AddMod(db.DefaultProfile, entry); err != nil {
		t.Fatalf("AddMod failed: %v", err)
	}
	// Record a second version in the history
	older := entry
	older.SelectedVersion = "1.1"
	if err := store.AddMod(db.DefaultProfile, older); err != nil {
		t.Fatalf("AddMod failed: %v", err)
	}
	if err := store.SetInstalled(db.DefaultProfile, entry.ModID, true); err != nil {
		t.Fatalf("SetInstalled failed: %v", err)
	}

	writeVersionFiles := func(version string) string {
		e := entry
		e.SelectedVersion = version
		dir := inst.VersionDir(e)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating version dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "cascade.zip"), []byte("archive"), 0644); err != nil {
			t.Fatalf("writing version file: %v", err)
		}
		return dir
	}

	t.Run("non-selected version keeps installed flag", func(t *testing.T) {
		dir := writeVersionFiles("1.1")
		got, _ := store.Entry(db.DefaultProfile, entry.ModID)
		if err := removeVersion(log, store, inst, db.DefaultProfile, got, "1.1"); err != nil {
			t.Fatalf("removeVersion failed: %v", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("version directory should be gone")
		}
		if known, _ := store.HasVersion(entry.ModID, "1.1"); known {
			t.Error("history row should be gone")
		}
		got, err := store.Entry(db.DefaultProfile, entry.ModID)
		if err != nil {
			t.Fatalf("Entry failed: %v", err)
		}
		if !got.Installed {
			t.Error("deleting a non-selected version must not clear the installed flag")
		}
	})

	t.Run("selected version clears installed flag", func(t *testing.T) {
		dir := writeVersionFiles("1.2")
		got, _ := store.Entry(db.DefaultProfile, entry.ModID)
		if err := removeVersion(log, store, inst, db.DefaultProfile, got, "1.2"); err != nil {
			t.Fatalf("removeVersion failed: %v", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("version directory should be gone")
		}
		if known, _ := store.HasVersion(entry.ModID, "1.2"); known {
			t.Error("history row should be gone")
		}
		got, err := store.Entry(db.DefaultProfile, entry.ModID)
		if err != nil {
			t.Fatalf("Entry failed: %v", err)
		}
		if got.Installed {
			t.Error("deleting the selected version must clear the installed flag")
		}
	})

	t.Run("unknown version surfaces the typed error", func(t *testing.T) {
		got, _ := store.Entry(db.DefaultProfile, entry.ModID)
		err := removeVersion(log, store, inst, db.DefaultProfile, got, "9.9")
		if classifyStoreError(err) != "no such version" {
			t.Errorf("expected the unknown-version error, got %v", err)
		}
	})
}
