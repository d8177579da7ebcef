package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/tui"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

func stockPage(n int) *domain.Page[domain.InventoryItem] {
	rows := make([]domain.InventoryItem, n)
	for i := range rows {
		rows[i] = domain.InventoryItem{
			ID:          string(rune('a' + i)),
			SKU:         "SKU-" + string(rune('A'+i)),
			ProductName: "Item",
			Quantity:    10,
		}
	}
	return &domain.Page[domain.InventoryItem]{Items: rows, Total: n}
}

func update(t *testing.T, m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(*tui.Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_Update(t *testing.T) {
	initModel := func(t *testing.T, refresh func()) *tui.Model {
		t.Helper()
		m := tui.NewModel(time.Second, refresh)
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
		m, _ = update(t, m, tui.MsgStock{Snapshot: query.Snapshot[*domain.Page[domain.InventoryItem]]{
			Data:      stockPage(5),
			HasData:   true,
			Status:    query.StatusSuccess,
			FetchedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		}})
		return m
	}

	t.Run("window size sets list height", func(t *testing.T) {
		m := initModel(t, nil)
		assert.Equal(t, 3, m.ListHeight)
		assert.Equal(t, 80, m.Width)
	})

	t.Run("navigation scrolls the list", func(t *testing.T) {
		m := initModel(t, nil)
		for range 4 {
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		}
		assert.Equal(t, 4, m.SelectedIdx)
		assert.Equal(t, 2, m.ListOffset)

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 4, m.SelectedIdx, "selection stops at the last row")

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
		assert.Equal(t, 0, m.SelectedIdx)
		assert.Equal(t, 0, m.ListOffset)

		row, ok := m.Selected()
		require.True(t, ok)
		assert.Equal(t, "SKU-A", row.SKU)
	})

	t.Run("refresh key and tick refetch", func(t *testing.T) {
		calls := 0
		m := initModel(t, func() { calls++ })

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		assert.Equal(t, 1, calls)

		cmd := m.Init()
		require.NotNil(t, cmd)
		_, next := update(t, m, cmd())
		assert.Equal(t, 2, calls)
		assert.NotNil(t, next, "the ticker keeps running")
	})

	t.Run("shrinking list clamps the selection", func(t *testing.T) {
		m := initModel(t, nil)
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
		assert.Equal(t, 4, m.SelectedIdx)

		m, _ = update(t, m, tui.MsgStock{Snapshot: query.Snapshot[*domain.Page[domain.InventoryItem]]{
			Data: stockPage(2), HasData: true, Status: query.StatusSuccess,
		}})
		assert.Equal(t, 1, m.SelectedIdx)
	})

	t.Run("failed refetch keeps the rows", func(t *testing.T) {
		m := initModel(t, nil)
		m, _ = update(t, m, tui.MsgStock{Snapshot: query.Snapshot[*domain.Page[domain.InventoryItem]]{
			Data:    stockPage(5),
			HasData: true,
			Err:     errors.New("backend down"),
			Status:  query.StatusError,
		}})
		assert.Len(t, m.Rows, 5)
		assert.EqualError(t, m.Err, "backend down")
	})

	t.Run("quit", func(t *testing.T) {
		m := initModel(t, nil)
		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}
