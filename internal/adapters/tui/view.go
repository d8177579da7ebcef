package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/ui/style"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.Summary == nil && m.Rows == nil {
		if m.Err != nil {
			return errorStyle.Render(style.Cross+" "+m.Err.Error()) + "\n"
		}
		return "Loading stock..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("STOCK"),
		m.summary(),
		m.stockList(),
		m.footer(),
	)
}

func (m *Model) summary() string {
	s := m.Summary
	if s == nil {
		s = &domain.InventorySummary{}
	}
	cells := []string{
		stat("Products", s.Products),
		stat("On hand", s.Quantity),
		stat("Reserved", s.Reserved),
		lowStyle.Render(stat("Low", s.LowStock)),
		outStyle.Render(stat("Out", s.OutOfStock)),
	}
	return summaryStyle.Render(strings.Join(cells, "   "))
}

func stat(label string, n int) string {
	return labelStyle.Render(label) + " " + fmt.Sprint(n)
}

func (m *Model) stockList() string {
	if len(m.Rows) == 0 {
		return footStyle.Render("no stock rows")
	}

	end := len(m.Rows)
	if m.ListHeight > 0 {
		end = min(m.ListOffset+m.ListHeight, len(m.Rows))
	}

	var s strings.Builder
	for i := m.ListOffset; i < end; i++ {
		row := m.Rows[i]
		line := fmt.Sprintf("%-12s %-24s %6d %6d", row.SKU, truncate(row.ProductName, 24), row.Quantity, row.Available())
		line = levelStyle(row).Render(levelIcon(row)) + " " + line
		if i == m.SelectedIdx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		s.WriteString(line + "\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func levelStyle(row domain.InventoryItem) lipgloss.Style {
	switch {
	case row.Available() <= 0:
		return outStyle
	case row.LowStock():
		return lowStyle
	default:
		return okStyle
	}
}

func levelIcon(row domain.InventoryItem) string {
	switch {
	case row.Available() <= 0:
		return style.Cross
	case row.LowStock():
		return style.Warning
	default:
		return style.Check
	}
}

func (m *Model) footer() string {
	parts := []string{fmt.Sprintf("%d of %d rows", len(m.Rows), m.Total)}
	if !m.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+m.UpdatedAt.Format(time.TimeOnly))
	}
	if m.Loading {
		parts = append(parts, "refreshing")
	}
	parts = append(parts, "r refresh", "q quit")
	foot := footStyle.Render(strings.Join(parts, " "+style.Dot+" "))
	if m.Err != nil {
		foot = errorStyle.Render(style.Cross+" "+m.Err.Error()) + "\n" + foot
	}
	return foot
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
