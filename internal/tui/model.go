// Package tui implements the interactive schedule browser.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
	"github.com/Veraticus/snowball/internal/tui/themes"
)

const monthsPerYear = 12

// Model pages through a plan's schedule one month at a time.
type Model struct {
	plan     *payoff.Plan
	months   [][]model.LedgerEntry
	theme    themes.Theme
	keymap   KeyMap
	help     help.Model
	bar      progress.Model
	width    int
	height   int
	month    int
	quitting bool
}

// New creates a browser for plan positioned on the first month.
func New(plan *payoff.Plan, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		plan:   plan,
		months: plan.Schedule.Months(),
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		bar: progress.New(
			progress.WithGradient(string(cfg.Theme.Primary), string(cfg.Theme.Secondary)),
			progress.WithoutPercentage(),
		),
	}
	if len(m.months) > 0 {
		m.month = 1
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NextMonth):
		m.goTo(m.month + 1)
	case key.Matches(msg, m.keymap.PrevMonth):
		m.goTo(m.month - 1)
	case key.Matches(msg, m.keymap.NextYear):
		m.goTo(m.month + monthsPerYear)
	case key.Matches(msg, m.keymap.PrevYear):
		m.goTo(m.month - monthsPerYear)
	case key.Matches(msg, m.keymap.Home):
		m.goTo(1)
	case key.Matches(msg, m.keymap.End):
		m.goTo(len(m.months))
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// goTo moves to month, clamped to the displayed schedule.
func (m *Model) goTo(month int) {
	if len(m.months) == 0 {
		return
	}
	m.month = min(max(month, 1), len(m.months))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.bar.Width = max(10, min(40, width/3))
}

// Month returns the month currently shown, or 0 for an empty schedule.
func (m Model) Month() int {
	return m.month
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// entries returns the ledger rows of the current month.
func (m Model) entries() []model.LedgerEntry {
	if m.month < 1 || m.month > len(m.months) {
		return nil
	}
	return m.months[m.month-1]
}
