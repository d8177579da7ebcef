package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/depot/internal/core/domain"
)

// chromeHeight is the number of lines around the stock list.
const chromeHeight = 9

// Model is the dashboard state. Query snapshots arrive as messages, so the
// model never blocks on the network.
type Model struct {
	Summary   *domain.InventorySummary
	Rows      []domain.InventoryItem
	Total     int
	Err       error
	Loading   bool
	UpdatedAt time.Time

	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int

	Interval time.Duration
	refresh  func()
}

// Init starts the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(time.Time) tea.Msg { return msgTick{} })
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

// Selected returns the highlighted stock row.
func (m *Model) Selected() (domain.InventoryItem, bool) {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Rows) {
		return m.Rows[m.SelectedIdx], true
	}
	return domain.InventoryItem{}, false
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.refresh()
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Rows)-1 {
				m.SelectedIdx++
				m.ensureVisible()
			}
		case "g", "home":
			m.SelectedIdx = 0
			m.ensureVisible()
		case "G", "end":
			m.SelectedIdx = max(len(m.Rows)-1, 0)
			m.ensureVisible()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.ListHeight = max(msg.Height-chromeHeight, 1)
		m.ensureVisible()

	case msgTick:
		m.refresh()
		return m, m.tick()

	case MsgSummary:
		if msg.Snapshot.HasData {
			m.Summary = msg.Snapshot.Data
		}
		m.Err = msg.Snapshot.Err
		m.Loading = msg.Snapshot.IsLoading()

	case MsgStock:
		snap := msg.Snapshot
		m.Loading = snap.IsLoading()
		m.Err = snap.Err
		if snap.HasData && snap.Data != nil {
			m.Rows = snap.Data.Items
			m.Total = snap.Data.Total
			m.UpdatedAt = snap.FetchedAt
			if m.SelectedIdx >= len(m.Rows) {
				m.SelectedIdx = max(len(m.Rows)-1, 0)
			}
			m.ensureVisible()
		}
	}

	return m, nil
}
