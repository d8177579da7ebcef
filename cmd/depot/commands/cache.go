package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the query cache",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List cached queries",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printRows(c, cmd, []render.Column[query.EntryInfo]{
					{Title: "Key", Value: func(e query.EntryInfo) string { return e.Key }},
					{Title: "Status", Value: func(e query.EntryInfo) string { return e.Status.String() }, Status: true},
					{Title: "Stale", Value: func(e query.EntryInfo) string { return yesNo(e.Stale) }},
					{Title: "Observers", Value: func(e query.EntryInfo) string { return itoa(e.Observers) }},
					{Title: "Fetched", Value: func(e query.EntryInfo) string { return age(e.FetchedAt) }},
				}, c.app.CacheEntries())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached query",
			Args:  cobra.NoArgs,
			Run: func(_ *cobra.Command, _ []string) {
				c.app.ClearCache()
			},
		},
	)
	return cmd
}

func age(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s ago", time.Since(t).Round(time.Second))
}
