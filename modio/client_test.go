package modio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"drg-mod-manager/config"

	"go.uber.org/zap"
)

func TestParseModURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantGame string
		wantSlug string
		wantOK   bool
	}{
		{"drg mod with fragment", "https://mod.io/g/drg/m/mod-hub#description", "drg", "mod-hub", true},
		{"drg mod with query", "https://mod.io/g/drg/m/mod-hub?tab=files", "drg", "mod-hub", true},
		{"long game slug", "https://mod.io/g/deeprockgalactic/m/brighter-flares", "deeprockgalactic", "brighter-flares", true},
		{"uppercase game", "https://mod.io/g/DRG/m/mod-hub", "drg", "mod-hub", true},
		{"other game", "https://mod.io/g/skyrim/m/some-mod", "", "", false},
		{"no mod path", "https://mod.io/g/drg", "", "", false},
		{"not a mod.io url", "https://example.com/downloads/mod.zip", "", "", false},
		{"empty string", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, slug, ok := ParseModURL(tt.url)
			if ok != tt.wantOK || game != tt.wantGame || slug != tt.wantSlug {
				t.Errorf("ParseModURL(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.url, game, slug, ok, tt.wantGame, tt.wantSlug, tt.wantOK)
			}
		})
	}
}

func TestConvertToEntry(t *testing.T) {
	mod := Mod{ID: 12345, Name: "Mod Hub", NameID: "mod-hub"}
	entry := ConvertToEntry(mod)

	if entry.ModID != "modio_12345" {
		t.Errorf("ModID = %q, want modio_12345", entry.ModID)
	}
	if entry.Name != "Mod Hub" {
		t.Errorf("Name = %q, want Mod Hub", entry.Name)
	}
	if entry.Link != "https://mod.io/g/drg/m/mod-hub" {
		t.Errorf("Link = %q", entry.Link)
	}
	if entry.DownloadFolder != "downloads" {
		t.Errorf("DownloadFolder = %q, want downloads", entry.DownloadFolder)
	}
	if entry.Installed || entry.Enabled {
		t.Error("converted entry must start not installed, not enabled")
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.Config{UserAgent: "test-agent"}, "test-key")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	client.BaseURL = server.URL
	return client
}

func TestGetMods(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/2475/mods" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("offset") != "20" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("unexpected pagination params: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, `{"data": [{"id": 1, "name": "Mod Hub", "name_id": "mod-hub"}, {"id": 2, "name": "Brighter Flares"}]}`)
	}))

	mods, err := client.GetMods(20, 10)
	if err != nil {
		t.Fatalf("GetMods failed: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("expected 2 mods, got %d", len(mods))
	}
	if mods[0].ID != 1 || mods[0].Name != "Mod Hub" {
		t.Errorf("unexpected first mod: %+v", mods[0])
	}
}

func TestMe(t *testing.T) {
	t.Run("sends bearer token", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			fmt.Fprint(w, `{"id": 77, "username": "miner"}`)
		}))

		user, err := client.Me()
		if err != nil {
			t.Fatalf("Me failed: %v", err)
		}
		if user.ID != 77 || user.Username != "miner" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client.APIKey = ""
		if _, err := client.Me(); err == nil {
			t.Error("expected error without OAuth key")
		}
	})

	t.Run("missing user id in response", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"username": "miner"}`)
		}))
		if _, err := client.Me(); err == nil {
			t.Error("expected error when response has no user id")
		}
	})
}

func TestGetModAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "not found"}}`, http.StatusNotFound)
	}))

	if _, err := client.GetMod(999); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestDownloadFile(t *testing.T) {
	content := "mod archive bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, content)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(config.Config{UserAgent: "test-agent"}, "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "nested", "mod.zip")
	if err := client.DownloadFile(zap.NewNop().Sugar(), dest, server.URL); err != nil {
		t.Fatalf("DownloadFile failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != content {
		t.Errorf("downloaded content = %q, want %q", data, content)
	}
}
