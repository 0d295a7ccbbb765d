package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drg-mod-manager/config"
	"drg-mod-manager/db"
	"drg-mod-manager/installer"
	"drg-mod-manager/logger"
)

// guiCmd represents the gui command
var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Launch the interactive interface to manage mods",
	Long:  `Launch an interactive TUI to browse the catalog, switch profiles and manage mod status.`,
	Run: func(_ *cobra.Command, _ []string) {
		runGUI()
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

// actionKind tags a pending mod action.
type actionKind int

const (
	actionToggleEnabled actionKind = iota
	actionUninstall
	actionDeleteVersion
	actionRequestDeleteConfirm
	actionCancelDeleteConfirm
)

// modAction is a user intent collected during input handling and applied
// as a batch once the handling pass is done.
type modAction struct {
	kind    actionKind
	modID   string
	enabled bool
}

// inputMode says which text input currently owns the keyboard.
type inputMode int

const (
	modeList inputMode = iota
	modeSearch
	modeNewProfile
)

// Model represents the state of the TUI
type Model struct {
	store   *db.Store
	session *db.Session
	inst    *installer.Installer
	cfg     config.Config

	mods     []db.ModEntry
	profiles []string

	selectedIndex int
	width         int
	height        int
	spinnerFrame  int

	mode          inputMode
	searchInput   textinput.Model
	profileInput  textinput.Model
	installedOnly bool

	// Keyed by mod ID; a true value means a version delete is awaiting y/n
	deleteConfirm        map[string]bool
	profileDeleteConfirm bool

	pending    []modAction
	installing bool
	errorText  string
	message    string
}

// Initialize the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reloadMods(),
		m.reloadProfiles(),
		tickSpinner(),
	)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func tickSpinner() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Message types
type modsReloadedMsg struct {
	mods []db.ModEntry
}

type profilesReloadedMsg struct {
	profiles []string
}

type installDoneMsg struct {
	modID string
	err   error
}

type errorMsg string

type statusMsg string

type spinnerTickMsg struct{}

type clearMessageMsg struct{}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case modsReloadedMsg:
		m.mods = msg.mods
		if m.selectedIndex >= len(m.visibleMods()) {
			m.selectedIndex = 0
		}
	case profilesReloadedMsg:
		m.profiles = msg.profiles
	case installDoneMsg:
		return m.handleInstallDone(msg)
	case errorMsg:
		m.errorText = string(msg)
		m.installing = false
	case statusMsg:
		m.message = string(msg)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearMessageMsg{}
		})
	case spinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		if m.installing {
			return m, tickSpinner()
		}
	case clearMessageMsg:
		m.message = ""
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeSearch {
		return m.handleSearchKey(msg)
	}
	if m.mode == modeNewProfile {
		return m.handleNewProfileKey(msg)
	}

	var cmds []tea.Cmd
	visible := m.visibleMods()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(visible)-1 {
			m.selectedIndex++
		}
	case "tab":
		cmds = append(cmds, m.cycleProfile())
	case "/":
		m.mode = modeSearch
		m.searchInput.Focus()
	case "f":
		m.installedOnly = !m.installedOnly
		m.selectedIndex = 0
	case "c":
		m.mode = modeNewProfile
		m.profileInput.Focus()
	case "D":
		if m.session.Current() != db.DefaultProfile {
			m.profileDeleteConfirm = true
		} else {
			m.errorText = "the Default profile cannot be deleted"
		}
	case "i":
		if mod, ok := m.selectedMod(); ok && !m.installing {
			m.installing = true
			cmds = append(cmds, m.installMod(mod), tickSpinner())
		}
	case "u":
		if mod, ok := m.selectedMod(); ok {
			m.pending = append(m.pending, modAction{kind: actionUninstall, modID: mod.ModID})
		}
	case "e":
		if mod, ok := m.selectedMod(); ok {
			m.pending = append(m.pending, modAction{kind: actionToggleEnabled, modID: mod.ModID, enabled: !mod.Enabled})
		}
	case "d":
		if mod, ok := m.selectedMod(); ok {
			m.pending = append(m.pending, modAction{kind: actionRequestDeleteConfirm, modID: mod.ModID})
		}
	case "y":
		if m.profileDeleteConfirm {
			m.profileDeleteConfirm = false
			cmds = append(cmds, m.deleteCurrentProfile())
		} else if mod, ok := m.selectedMod(); ok && m.deleteConfirm[mod.ModID] {
			m.pending = append(m.pending, modAction{kind: actionDeleteVersion, modID: mod.ModID})
		}
	case "n", "esc":
		m.profileDeleteConfirm = false
		if mod, ok := m.selectedMod(); ok {
			m.pending = append(m.pending, modAction{kind: actionCancelDeleteConfirm, modID: mod.ModID})
		}
	}

	if cmd := m.applyPending(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.searchInput.Blur()
		m.selectedIndex = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleNewProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.profileInput.Blur()
		m.profileInput.SetValue("")
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.profileInput.Value())
		m.mode = modeList
		m.profileInput.Blur()
		m.profileInput.SetValue("")
		if name == "" {
			return m, nil
		}
		return m, m.createProfile(name)
	}
	var cmd tea.Cmd
	m.profileInput, cmd = m.profileInput.Update(msg)
	return m, cmd
}

// applyPending drains the collected actions against the store and returns
// a reload command if anything changed.
func (m *Model) applyPending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	actions := m.pending
	m.pending = nil

	needsReload := false
	for _, action := range actions {
		switch action.kind {
		case actionRequestDeleteConfirm:
			m.deleteConfirm[action.modID] = true
		case actionCancelDeleteConfirm:
			delete(m.deleteConfirm, action.modID)
		case actionToggleEnabled:
			if err := m.store.SetEnabled(m.session.Current(), action.modID, action.enabled); err != nil {
				m.errorText = storeErrorText(err)
			} else {
				needsReload = true
			}
		case actionUninstall:
			if err := m.store.SetInstalled(m.session.Current(), action.modID, false); err != nil {
				m.errorText = storeErrorText(err)
			} else {
				needsReload = true
			}
			delete(m.deleteConfirm, action.modID)
		case actionDeleteVersion:
			if err := m.deleteVersion(action.modID); err != nil {
				m.errorText = storeErrorText(err)
			} else {
				needsReload = true
			}
			delete(m.deleteConfirm, action.modID)
		}
	}

	if needsReload {
		return m.reloadMods()
	}
	return nil
}

// deleteVersion removes the selected version's files and history row.
func (m *Model) deleteVersion(modID string) error {
	profile := m.session.Current()
	entry, err := m.store.Entry(profile, modID)
	if err != nil {
		return err
	}
	return removeVersion(logger.Log, m.store, m.inst, profile, entry, entry.SelectedVersion)
}

func storeErrorText(err error) string {
	if msg := classifyStoreError(err); msg != "" {
		return msg
	}
	return err.Error()
}

func (m Model) handleInstallDone(msg installDoneMsg) (tea.Model, tea.Cmd) {
	m.installing = false
	if msg.err != nil {
		m.errorText = storeErrorText(msg.err)
		return m, nil
	}
	m.message = fmt.Sprintf("Installed %s", msg.modID)
	return m, tea.Batch(
		m.reloadMods(),
		tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearMessageMsg{}
		}),
	)
}

// Commands

func (m Model) reloadMods() tea.Cmd {
	profile := m.session.Current()
	return func() tea.Msg {
		mods, err := m.store.Mods(profile)
		if err != nil {
			logger.Log.Errorw("Failed to load mods", zap.String("profile", profile), zap.Error(err))
			return errorMsg(storeErrorText(err))
		}
		return modsReloadedMsg{mods: mods}
	}
}

func (m Model) reloadProfiles() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.store.Profiles()
		if err != nil {
			logger.Log.Errorw("Failed to load profiles", zap.Error(err))
			return errorMsg(storeErrorText(err))
		}
		return profilesReloadedMsg{profiles: profiles}
	}
}

func (m *Model) cycleProfile() tea.Cmd {
	if len(m.profiles) == 0 {
		return nil
	}
	current := m.session.Current()
	next := m.profiles[0]
	for i, name := range m.profiles {
		if name == current {
			next = m.profiles[(i+1)%len(m.profiles)]
			break
		}
	}
	if err := m.session.Switch(next); err != nil {
		m.errorText = storeErrorText(err)
		return nil
	}
	m.selectedIndex = 0
	return m.reloadMods()
}

func (m Model) createProfile(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.CreateProfile(name); err != nil {
			return errorMsg(storeErrorText(err))
		}
		logger.Log.Infow("Profile created", zap.String("profile", name))
		return profilesReloadedMsg{profiles: mustProfiles(m.store)}
	}
}

func (m *Model) deleteCurrentProfile() tea.Cmd {
	doomed := m.session.Current()
	if err := m.session.Switch(db.DefaultProfile); err != nil {
		m.errorText = storeErrorText(err)
		return nil
	}
	// Reload the table too, so it shows Default instead of the dead profile
	return tea.Batch(
		func() tea.Msg {
			if err := m.store.DeleteProfile(doomed); err != nil {
				return errorMsg(storeErrorText(err))
			}
			logger.Log.Infow("Profile deleted", zap.String("profile", doomed))
			return profilesReloadedMsg{profiles: mustProfiles(m.store)}
		},
		m.reloadMods(),
	)
}

func mustProfiles(store *db.Store) []string {
	profiles, err := store.Profiles()
	if err != nil {
		logger.Log.Errorw("Failed to reload profiles", zap.Error(err))
		return nil
	}
	return profiles
}

func (m Model) installMod(mod db.ModEntry) tea.Cmd {
	profile := m.session.Current()
	return func() tea.Msg {
		// A mod added under another profile may have no status row yet
		if err := m.store.AddMod(profile, mod); err != nil {
			return installDoneMsg{modID: mod.ModID, err: err}
		}
		if err := m.inst.Install(logger.Log, mod); err != nil {
			return installDoneMsg{modID: mod.ModID, err: err}
		}
		if err := m.store.SetInstalled(profile, mod.ModID, true); err != nil {
			return installDoneMsg{modID: mod.ModID, err: err}
		}
		return installDoneMsg{modID: mod.ModID}
	}
}

// Filtering

func (m Model) visibleMods() []db.ModEntry {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	var visible []db.ModEntry
	for _, mod := range m.mods {
		if m.installedOnly && !mod.Installed {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(mod.Name), query) {
			continue
		}
		visible = append(visible, mod)
	}
	return visible
}

func (m Model) selectedMod() (db.ModEntry, bool) {
	visible := m.visibleMods()
	if len(visible) == 0 || m.selectedIndex >= len(visible) {
		return db.ModEntry{}, false
	}
	return visible[m.selectedIndex], true
}

// View renders the UI
func (m Model) View() string {
	var output string
	output += m.renderProfileBar()
	output += "\n"

	if m.mode == modeSearch || m.searchInput.Value() != "" {
		output += "Search: " + m.searchInput.View() + "\n"
	}
	if m.mode == modeNewProfile {
		output += "New profile: " + m.profileInput.View() + "\n"
	}
	if m.profileDeleteConfirm {
		output += confirmStyle.Render(fmt.Sprintf("Delete profile %q and its statuses? (y/n)", m.session.Current())) + "\n"
	}

	output += "\n" + renderHeader() + "\n"

	visible := m.visibleMods()
	if len(visible) == 0 {
		output += "  No mods. Press 'q' to quit, or add mods with the 'add' command.\n"
	}
	for i, mod := range visible {
		output += m.renderModRow(i, mod)
		output += "\n"
	}

	if m.installing {
		output += "\n" + spinnerFrames[m.spinnerFrame] + " Installing...\n"
	}

	output += "\n" + renderFooter()
	if m.message != "" {
		output += "\n" + messageStyle.Render(m.message)
	}
	if m.errorText != "" {
		output += "\n" + errorStyle.Render("Error: "+m.errorText)
	}
	return output
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
	currentProfileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12")).
				Underline(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func (m Model) renderProfileBar() string {
	var parts []string
	for _, name := range m.profiles {
		if name == m.session.Current() {
			parts = append(parts, currentProfileStyle.Render(name))
		} else {
			parts = append(parts, name)
		}
	}
	return "Profiles: " + strings.Join(parts, "  ")
}

func renderHeader() string {
	return headerStyle.Render(fmt.Sprintf("%-30s %-12s %-14s %-10s", "Mod Name", "Version", "Installed", "Enabled"))
}

func renderFooter() string {
	return footerStyle.Render("↑/k ↓/j: move  tab: profile  /: search  f: installed only  i: install  u: uninstall  e: enable/disable  d: delete version  c: new profile  D: delete profile  q: quit")
}

func (m Model) renderModRow(index int, mod db.ModEntry) string {
	rowStyle := lipgloss.NewStyle().Padding(0, 1)
	if index == m.selectedIndex {
		rowStyle = rowStyle.
			Background(lipgloss.Color("8")).
			Bold(true)
	}

	installed := "no"
	if mod.Installed {
		installed = "yes"
	}
	enabled := "no"
	if mod.Enabled {
		enabled = "yes"
	}

	marker := " "
	if m.deleteConfirm[mod.ModID] {
		marker = "!"
		installed = "delete? y/n"
	}

	row := fmt.Sprintf("%s %-29s %-12s %-14s %-10s",
		marker,
		truncate(mod.Name, 27),
		truncate(mod.SelectedVersion, 10),
		installed,
		enabled,
	)
	return rowStyle.Render(row)
}

func runGUI() {
	cfg, store, client := bootstrap(".")

	searchInput := textinput.New()
	searchInput.Placeholder = "mod name"
	searchInput.CharLimit = 64
	searchInput.Width = 24

	profileInput := textinput.New()
	profileInput.Placeholder = "profile name"
	profileInput.CharLimit = 64
	profileInput.Width = 24

	m := Model{
		store:         store,
		session:       db.NewSession(store),
		inst:          installer.New(cfg.AppDataDir, client),
		cfg:           cfg,
		searchInput:   searchInput,
		profileInput:  profileInput,
		deleteConfirm: make(map[string]bool),
		width:         80,
		height:        24,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run GUI", zap.Error(err))
	}
}
