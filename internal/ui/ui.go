// Package ui provides the Bubble Tea watch-mode interface for courtwatch.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"courtwatch/internal/prefs"
	"courtwatch/internal/state"
)

// uiTick is the UI refresh cadence; the poller runs on its own interval.
const uiTick = time.Second

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	PollTick      time.Duration
	ThemeName     string
	PrefsPath     string
	InitialFilter string
	Refresh       func() // requests an immediate poll
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	prefsPath string
	pollTick  time.Duration
	refresh   func()

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// Table state
	viewport    viewport.Model
	filterInput textinput.Model
	filter      string
	filtering   bool

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Minute
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Court"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "venue filter"
	input.CharLimit = 64
	input.Width = 30

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		refresh:     opts.Refresh,
		theme:       GetTheme(themeName),
		filterInput: input,
		filter:      strings.TrimSpace(opts.InitialFilter),
	}
}

type tickMsg time.Time

type snapshotMsg state.Snapshot

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg { return snapshotMsg(store.Snapshot()) }
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(uiTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshContent()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(uiTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter":
			m.filter = strings.TrimSpace(m.filterInput.Value())
			m.filtering = false
			m.filterInput.Blur()
			m.savePrefs()
			m.refreshContent()
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch msg.String() {
		case "q", "esc", "?", "h":
			m.showHelp = false
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		if m.refresh != nil {
			m.refresh()
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.filter)
		m.filterInput.Focus()
		return m, textinput.Blink
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.savePrefs()
			m.refreshContent()
		}
		return m, nil
	case "?", "h":
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading courtwatch..."
	}
	if m.showHelp {
		return m.renderHeader() + "\n" + m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderChanges())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// resize recomputes the viewport dimensions from the window size.
func (m *Model) resize() {
	// header + column header + changes panel + footer
	chrome := 3 + changePanelHeight(m.snapshot)
	height := m.height - chrome
	if height < 3 {
		height = 3
	}
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.width, height)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
}

// refreshContent re-renders the slot table into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.resize()
	m.viewport.SetContent(m.renderTable())
}

func (m Model) savePrefs() {
	// Best effort; prefs are a convenience.
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:       m.theme.Name,
		VenueFilter: m.filter,
	})
}

// Run starts the UI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(New(opts), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled)) {
		return nil
	}
	return err
}
