package modio

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"drg-mod-manager/config"
	"drg-mod-manager/db"

	"go.uber.org/zap"
)

const (
	modioAPIURL    = "https://api.mod.io/v1"
	drgGameID      = 2475 // Deep Rock Galactic
	defaultTimeout = 5 * time.Second
)

// Client handles communication with the mod.io API.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client

	userID int // Set after Me(); switches requests to the user-specific API host
}

// NewClient creates a new mod.io API client using the provided configuration.
func NewClient(cfg config.Config, apiKey string) (*Client, error) {
	if cfg.UserAgent == "" {
		// Should be handled by LoadConfig default, but double-check
		return nil, fmt.Errorf("USERAGENT is not configured")
	}

	return &Client{
		BaseURL:   modioAPIURL,
		APIKey:    apiKey,
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

func (c *Client) makeRequest(method, path string, queryParams url.Values, target interface{}, requiresAuth bool, isBinary bool) (*http.Response, error) {
	fullURL := c.BaseURL + path
	if isBinary {
		// For binary downloads, the 'path' is expected to be the full URL already
		fullURL = path
	}

	req, err := http.NewRequest(method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	req.Header.Set("User-Agent", c.UserAgent)
	if requiresAuth {
		if c.APIKey == "" {
			return nil, fmt.Errorf("authentication required, but no mod.io OAuth key is set")
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	if !isBinary {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "application/octet-stream")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close() // Close body even on error
		return resp, fmt.Errorf("api request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	// Don't try to decode JSON or close body for binary responses here
	if target != nil && !isBinary {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return resp, fmt.Errorf("failed to decode json response: %w", err)
		}
	}

	return resp, nil // For binary, return the response so the caller can handle the body
}

// Me retrieves the authenticated user. Later requests go through the
// user-specific API host once the user ID is known.
func (c *Client) Me() (*User, error) {
	var user User
	_, err := c.makeRequest("GET", "/me", nil, &user, true, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("could not determine user ID from OAuth key")
	}

	c.userID = user.ID
	if c.BaseURL == modioAPIURL {
		c.BaseURL = fmt.Sprintf("https://u-%d.modapi.io/v1", c.userID)
	}
	return &user, nil
}

// ListGames retrieves the games the authenticated user has access to.
func (c *Client) ListGames() ([]Game, error) {
	if c.userID == 0 {
		if _, err := c.Me(); err != nil {
			return nil, err
		}
	}

	var response gamesResponse
	_, err := c.makeRequest("GET", "/me/games", nil, &response, true, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get user games: %w", err)
	}
	return response.Data, nil
}

// GetMods retrieves a page of the DRG mod catalog.
func (c *Client) GetMods(offset, limit int) ([]Mod, error) {
	params := url.Values{}
	params.Add("offset", strconv.Itoa(offset))
	params.Add("limit", strconv.Itoa(limit))

	var response modsResponse
	_, err := c.makeRequest("GET", fmt.Sprintf("/games/%d/mods", drgGameID), params, &response, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get mods: %w", err)
	}
	return response.Data, nil
}

// GetMod retrieves details of a single DRG mod.
func (c *Client) GetMod(modID int) (*Mod, error) {
	var mod Mod
	_, err := c.makeRequest("GET", fmt.Sprintf("/games/%d/mods/%d", drgGameID, modID), nil, &mod, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get mod %d: %w", modID, err)
	}
	return &mod, nil
}

// DownloadFile downloads a mod file from the given URL and saves it to the specified destination path.
func (c *Client) DownloadFile(log *zap.SugaredLogger, destinationPath, downloadURL string) error {
	dir := filepath.Dir(destinationPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Warnw("Target directory for download does not exist, attempting to create", zap.String("directory", dir))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create target directory '%s': %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check target directory '%s': %w", dir, err)
	}

	resp, err := c.makeRequest("GET", downloadURL, nil, nil, false, true)
	if err != nil {
		return fmt.Errorf("failed to start download for '%s' from %s: %w", filepath.Base(destinationPath), downloadURL, err)
	}
	defer resp.Body.Close()

	outFile, err := os.Create(destinationPath)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", destinationPath, err)
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, resp.Body)
	if err != nil {
		// Attempt to remove partially downloaded file on error
		os.Remove(destinationPath)
		return fmt.Errorf("failed to write downloaded content to '%s': %w", destinationPath, err)
	}

	return nil
}

// supportedGames are the mod.io game slugs this manager handles.
var supportedGames = []string{"drg", "deeprockgalactic"}

// ParseModURL extracts the game and mod slug from a browse URL like
// "https://mod.io/g/drg/m/mod-hub#description". Returns false for URLs of
// other games or other shapes.
func ParseModURL(raw string) (game, slug string, ok bool) {
	_, after, found := strings.Cut(raw, "/g/")
	if !found {
		return "", "", false
	}

	game = strings.ToLower(strings.SplitN(after, "/", 2)[0])
	supported := false
	for _, g := range supportedGames {
		if game == g {
			supported = true
			break
		}
	}
	if !supported {
		return "", "", false
	}

	_, modPart, found := strings.Cut(after, "/m/")
	if !found || modPart == "" {
		return "", "", false
	}
	slug = strings.SplitN(modPart, "#", 2)[0]
	slug = strings.SplitN(slug, "?", 2)[0]
	slug = strings.SplitN(slug, "/", 2)[0]
	if slug == "" {
		return "", "", false
	}
	return game, slug, true
}

// ConvertToEntry maps a remote mod onto the catalog shape the store consumes.
func ConvertToEntry(m Mod) db.ModEntry {
	slug := m.NameID
	if slug == "" {
		slug = strconv.Itoa(m.ID)
	}
	return db.ModEntry{
		ModID:           fmt.Sprintf("modio_%d", m.ID),
		Name:            m.Name,
		Link:            fmt.Sprintf("https://mod.io/g/drg/m/%s", slug),
		DownloadFolder:  "downloads",
		SelectedVersion: db.DefaultVersion,
		Installed:       false,
		Enabled:         false,
	}
}

// --- Structs for API Responses (Basic Definitions) ---

// User represents a mod.io user (simplified).
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
}

// Game represents a mod.io game the user has access to.
type Game struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameID string `json:"name_id"` // URL slug
}

// Mod represents a mod.io mod.
type Mod struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	NameID      string `json:"name_id"` // URL slug
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Logo        Logo   `json:"logo"`
	SubmittedBy User   `json:"submitted_by"`
	DateAdded   int64  `json:"date_added"`
	DateUpdated int64  `json:"date_updated"`
	Stats       Stats  `json:"stats"`
}

// Logo represents the image set attached to a mod.
type Logo struct {
	Filename     string `json:"filename"`
	Original     string `json:"original"`
	Thumb320x180 string `json:"thumb_320x180"`
}

// Stats represents the popularity counters of a mod.
type Stats struct {
	DownloadsTotal   int `json:"downloads_total"`
	SubscribersTotal int `json:"subscribers_total"`
	RatingTotal      int `json:"rating_total"`
}

type modsResponse struct {
	Data []Mod `json:"data"`
}

type gamesResponse struct {
	Data []Game `json:"data"`
}
