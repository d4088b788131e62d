// Package tui is the interactive terminal game.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/supertrader/sim"
	"github.com/rustyeddy/supertrader/tui/panels"
	"github.com/rustyeddy/supertrader/tui/styles"
)

// Engine is what the model needs from *sim.Engine.
type Engine interface {
	Buy() bool
	Sell() bool
	Snapshot() sim.Snapshot
}

// Model is the main TUI application model. The engine is advanced by a
// sim.Runner; the model only polls snapshots and forwards key presses.
type Model struct {
	engine   Engine
	interval time.Duration

	chart *panels.ChartPanel
	stats *panels.StatsPanel
	keys  keyMap
	help  help.Model

	snap sim.Snapshot

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a model that refreshes every interval.
func NewModel(e Engine, interval time.Duration) *Model {
	if interval <= 0 {
		interval = sim.DefaultTickInterval
	}
	return &Model{
		engine:   e,
		interval: interval,
		chart:    panels.NewChartPanel(interval),
		stats:    panels.NewStatsPanel(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		snap:     e.Snapshot(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.tickRefresh()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Buy):
			m.trade("Bought", "Cannot buy", m.engine.Buy)
		case key.Matches(msg, m.keys.Sell):
			m.trade("Sold", "Nothing to sell", m.engine.Sell)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case tickMsg:
		m.refresh()
		return m, m.tickRefresh()
	}

	return m, nil
}

func (m *Model) trade(done, refused string, do func() bool) {
	if do() {
		m.statusMsg = done + " one share"
	} else {
		m.statusMsg = refused
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.snap = m.engine.Snapshot()
}

// Snapshot returns the state the model last rendered from.
func (m *Model) Snapshot() sim.Snapshot { return m.snap }

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌───────────────────────────┬──────────────┐
	// │  Price chart              │  Portfolio   │
	// │                           │  [Buy][Sell] │
	// └───────────────────────────┴──────────────┘
	rightWidth := 36
	if rightWidth > m.width/2 {
		rightWidth = m.width / 2
	}
	leftWidth := m.width - rightWidth
	bodyHeight := m.height - 2

	var banner string
	if m.snap.Over {
		banner = styles.BannerStyle.Width(m.width).Render(
			"Stock collapsed\nGame over, your remaining stocks are sold for 0")
		bodyHeight -= 2
	}

	m.chart.SetSeries(m.snap.Series)
	m.chart.SetSize(leftWidth, bodyHeight)
	m.stats.SetSnapshot(m.snap)
	m.stats.SetSize(rightWidth, bodyHeight)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.stats.View(),
		"",
		panels.Buttons(m.snap),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.chart.View(), right)

	parts := []string{}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderStatusBar() string {
	status := m.help.View(m.keys)
	if m.statusMsg != "" {
		status += " │ " + m.statusMsg
	}
	return styles.StatusBarStyle.Width(m.width).Render(status)
}

// tickMsg is sent periodically to refresh data.
type tickMsg struct{}

func (m *Model) tickRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
