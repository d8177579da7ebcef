// Package render prints records as terminal tables or as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

// Column describes one table column of T.
type Column[T any] struct {
	Title string
	Value func(T) string
	// Status colors the cell with style.StatusColor.
	Status bool
}

// Table writes rows as a bordered table.
func Table[T any](w io.Writer, cols []Column[T], rows []T) error {
	r := output.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(style.Teal).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = make([]string, len(cols))
		for j, c := range cols {
			data[i][j] = c.Value(row)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if cols[col].Status && row >= 0 && row < len(data) {
				return cell.Foreground(style.StatusColor(data[row][col]))
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Pairs writes label/value lines aligned on the labels.
func Pairs(w io.Writer, pairs [][2]string) error {
	r := output.NewRenderer(w)
	label := r.NewStyle().Foreground(style.Slate)

	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s  %s\n", label.Width(width).Render(p[0]), p[1]); err != nil {
			return err
		}
	}
	return nil
}
