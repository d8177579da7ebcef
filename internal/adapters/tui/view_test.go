package tui_test

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/adapters/tui"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

func TestView(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("loading", func(t *testing.T) {
		m := tui.NewModel(time.Second, nil)
		assert.Equal(t, "Loading stock...", m.View())
	})

	t.Run("first fetch failed", func(t *testing.T) {
		m := tui.NewModel(time.Second, nil)
		m.Err = errors.New("backend down")
		assert.Contains(t, m.View(), "backend down")
	})

	t.Run("rows and summary", func(t *testing.T) {
		m := tui.NewModel(time.Second, nil)
		_, _ = m.Update(tui.MsgSummary{Snapshot: query.Snapshot[*domain.InventorySummary]{
			Data:    &domain.InventorySummary{Products: 3, LowStock: 1, OutOfStock: 1},
			HasData: true,
			Status:  query.StatusSuccess,
		}})
		_, _ = m.Update(tui.MsgStock{Snapshot: query.Snapshot[*domain.Page[domain.InventoryItem]]{
			Data: &domain.Page[domain.InventoryItem]{
				Items: []domain.InventoryItem{
					{SKU: "TEA-1", ProductName: "Green tea", Quantity: 40},
					{SKU: "TEA-2", ProductName: "Black tea", Quantity: 3, ReorderLevel: 5},
					{SKU: "TEA-3", ProductName: "A very long product name that overflows", Quantity: 0},
				},
				Total: 3,
			},
			HasData: true,
			Status:  query.StatusSuccess,
		}})

		view := m.View()
		assert.Contains(t, view, "STOCK")
		assert.Contains(t, view, "Products 3")
		assert.Contains(t, view, "> ✓ TEA-1")
		assert.Contains(t, view, "! TEA-2")
		assert.Contains(t, view, "✗ TEA-3")
		assert.Contains(t, view, "A very long product nam…")
		assert.Contains(t, view, "3 of 3 rows")
	})
}
