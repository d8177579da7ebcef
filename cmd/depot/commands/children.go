package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

type childWrite[V any] func(ctx context.Context, ch features.Child[V]) error

// write adapts a sub-collection mutation to a childWrite.
func write[V, D any](m *query.Mutation[features.Child[V], D]) childWrite[V] {
	return func(ctx context.Context, ch features.Child[V]) error {
		_, err := m.MutateAsync(ctx, ch)
		return err
	}
}

// childDef describes the command group of a sub-collection such as the
// addresses of a customer. Nil writers leave the matching command out.
type childDef[V any] struct {
	use     string
	short   string
	columns []render.Column[V]
	list    func(ctx context.Context, f *features.Features, owner string) ([]V, error)
	add     func(*features.Features) childWrite[V]
	update  func(*features.Features) childWrite[V]
	remove  func(*features.Features) childWrite[V]
}

// observed reads a sub-collection through a short-lived observer so the
// fetch shares the cache entry with other views of the same owner.
func observed[V any](open func(owner string) *query.Observer[[]V]) func(ctx context.Context, owner string) ([]V, error) {
	return func(ctx context.Context, owner string) ([]V, error) {
		obs := open(owner)
		defer obs.Close()
		snap, err := obs.Wait(ctx)
		if err != nil {
			return nil, err
		}
		return snap.Data, nil
	}
}

func newChildCmd[V any](c *CLI, s childDef[V]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.use,
		Short: s.short,
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <owner-id>",
		Short: "List the entries of one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := s.list(cmd.Context(), c.app.Features(), args[0])
			if err != nil {
				return err
			}
			return printRows(c, cmd, s.columns, rows)
		},
	})

	if s.add != nil {
		cmd.AddCommand(newChildWriteCmd(c, "add <owner-id>", "Add an entry", 1, s.add))
	}
	if s.update != nil {
		cmd.AddCommand(newChildWriteCmd(c, "update <owner-id> <id>", "Update an entry", 2, s.update))
	}
	if s.remove != nil {
		cmd.AddCommand(&cobra.Command{
			Use:     "remove <owner-id> <id>",
			Aliases: []string{"rm"},
			Short:   "Remove an entry",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := s.remove(c.app.Features())(cmd.Context(), features.Child[V]{OwnerID: args[0], ID: args[1]})
				return reported(err)
			},
		})
	}
	return cmd
}

func newChildWriteCmd[V any](c *CLI, use, short string, nargs int, writer func(*features.Features) childWrite[V]) *cobra.Command {
	var pf payloadFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pf.read(cmd)
			if err != nil {
				return err
			}
			ch := features.Child[V]{OwnerID: args[0]}
			if nargs > 1 {
				ch.ID = args[1]
			}
			if err := decodeInto(data, &ch.Value); err != nil {
				return err
			}
			return reported(writer(c.app.Features())(cmd.Context(), ch))
		},
	}
	pf.register(cmd)
	return cmd
}
