package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/adapters/tui" //nolint:depguard // Dashboard is bound to the CLI
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/zerr"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var (
		lf       listFlags
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow stock levels in a live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !output.IsTerminal(cmd.OutOrStdout()) {
				return zerr.Wrap(domain.ErrInvalidInput, "watch needs an interactive terminal")
			}
			inv := c.app.Features().Inventory

			var summary *query.Observer[*domain.InventorySummary]
			var stock *query.Observer[*domain.Page[domain.InventoryItem]]
			model := tui.NewModel(interval, func() {
				summary.Refetch()
				stock.Refetch()
			})
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)

			summary = inv.Summary(query.OnChange(func(s query.Snapshot[*domain.InventorySummary]) {
				p.Send(tui.MsgSummary{Snapshot: s})
			}))
			defer summary.Close()
			stock = inv.List(lf.params(), query.OnChange(func(s query.Snapshot[*domain.Page[domain.InventoryItem]]) {
				p.Send(tui.MsgStock{Snapshot: s})
			}))
			defer stock.Close()

			_, err := p.Run()
			return err
		},
	}
	lf.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", tui.DefaultInterval, "How often to refetch")
	return cmd
}
