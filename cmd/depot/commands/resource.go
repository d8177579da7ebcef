package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
	"go.trai.ch/zerr"
)

// resourceDef describes the CRUD command group of one entity.
type resourceDef[T, In any] struct {
	short    string
	aliases  []string
	resource func(*features.Features) *features.Resource[T, In]
	columns  []render.Column[T]
}

type listFlags struct {
	page    int
	limit   int
	search  string
	status  string
	sort    string
	filters map[string]string
}

func (l *listFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&l.page, "page", 0, "Page number, starting at 1")
	f.IntVar(&l.limit, "limit", 0, "Page size")
	f.StringVarP(&l.search, "search", "s", "", "Free text search")
	f.StringVar(&l.status, "status", "", "Filter by status")
	f.StringVar(&l.sort, "sort", "", "Sort field, prefix with - for descending")
	f.StringToStringVar(&l.filters, "filter", nil, "Extra filters as key=value")
}

func (l *listFlags) params() domain.ListParams {
	return domain.ListParams{
		Page:     l.page,
		PageSize: l.limit,
		Search:   l.search,
		Status:   l.status,
		Sort:     l.sort,
		Filters:  l.filters,
	}
}

// newResourceCmd builds list, get, create, update, delete, status, export
// and import for the entity of s.
func newResourceCmd[T, In any](c *CLI, e domain.Entity, s resourceDef[T, In]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     e.Plural(),
		Aliases: s.aliases,
		Short:   s.short,
		Args:    cobra.NoArgs,
	}
	res := func() *features.Resource[T, In] { return s.resource(c.app.Features()) }

	cmd.AddCommand(
		newListCmd(c, res, s.columns),
		newGetCmd(res),
		newCreateCmd(res),
		newUpdateCmd(res),
		newDeleteCmd(res),
		newStatusCmd(res),
		newExportCmd(func() exporter { return res().Export }),
		newImportCmd(res),
	)
	return cmd
}

func newListCmd[T, In any](c *CLI, res func() *features.Resource[T, In], cols []render.Column[T]) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := res().FetchList(cmd.Context(), lf.params())
			if err != nil {
				return err
			}
			return printPage(c, cmd, cols, page)
		},
	}
	lf.register(cmd)
	return cmd
}

func newGetCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := res().FetchDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRecord(cmd, v)
		},
	}
}

func newCreateCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	var pf payloadFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from a JSON payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := pf.read(cmd)
			if err != nil {
				return err
			}
			r := res()
			if err := submit(cmd, r, nil, data); err != nil {
				return err
			}
			return printRecord(cmd, r.Create.State().Data)
		},
	}
	pf.register(cmd)
	return cmd
}

func newUpdateCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	var pf payloadFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record; the payload is merged onto its current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pf.read(cmd)
			if err != nil {
				return err
			}
			r := res()
			existing, err := r.FetchDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := submit(cmd, r, existing, data); err != nil {
				return err
			}
			return printRecord(cmd, r.Update.State().Data)
		},
	}
	pf.register(cmd)
	return cmd
}

// submit runs one pass of the edit flow: open, apply the payload, submit.
// Field errors the server reported are listed under the notification.
func submit[T, In any](cmd *cobra.Command, r *features.Resource[T, In], existing *T, data []byte) error {
	editor := r.Editor()
	editor.Open(existing)

	var decodeErr error
	if err := editor.Edit(func(draft *In) { decodeErr = decodeInto(data, draft) }); err != nil {
		return err
	}
	if decodeErr != nil {
		editor.Close()
		return decodeErr
	}

	if err := editor.Submit(cmd.Context()); err != nil {
		printFieldErrors(cmd.ErrOrStderr(), editor.Errors())
		return reported(err)
	}
	return nil
}

func newDeleteCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := res().Delete.MutateAsync(cmd.Context(), args[0])
			return reported(err)
		},
	}
}

func newStatusCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> active|inactive",
		Short:     "Activate or deactivate a record",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"active", "inactive"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var active bool
			switch args[1] {
			case "active":
				active = true
			case "inactive":
			default:
				return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "status must be active or inactive"), "status", args[1])
			}
			_, err := res().SetStatus.MutateAsync(cmd.Context(), features.StatusChange{ID: args[0], Active: active})
			return reported(err)
		},
	}
}

func newImportCmd[T, In any](res func() *features.Resource[T, In]) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, closer, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			result, err := res().Import.MutateAsync(cmd.Context(), upload)
			if err != nil {
				return reported(err)
			}
			if err := render.Pairs(cmd.OutOrStdout(), [][2]string{
				{"Created", itoa(result.Created)},
				{"Updated", itoa(result.Updated)},
				{"Failed", itoa(result.Failed)},
			}); err != nil {
				return err
			}
			for _, fe := range result.Errors {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
			}
			return nil
		},
	}
}
