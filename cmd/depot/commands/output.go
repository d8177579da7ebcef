package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/render"
	"go.trai.ch/zerr"
)

const (
	outputAuto  = "auto"
	outputTable = "table"
	outputJSON  = "json"
)

func (c *CLI) validateOutput() error {
	switch c.opts.output {
	case outputAuto, outputTable, outputJSON:
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "unknown output format"), "output", c.opts.output)
	}
}

// wantsJSON reports whether records go out as JSON. Auto picks tables for
// terminals and JSON for pipes.
func (c *CLI) wantsJSON(w io.Writer) bool {
	switch c.opts.output {
	case outputJSON:
		return true
	case outputTable:
		return false
	default:
		return !output.IsTerminal(w)
	}
}

func printRows[T any](c *CLI, cmd *cobra.Command, cols []render.Column[T], rows []T) error {
	w := cmd.OutOrStdout()
	if c.wantsJSON(w) {
		return render.JSON(w, rows)
	}
	return render.Table(w, cols, rows)
}

func printPage[T any](c *CLI, cmd *cobra.Command, cols []render.Column[T], page *domain.Page[T]) error {
	w := cmd.OutOrStdout()
	if c.wantsJSON(w) {
		return render.JSON(w, page)
	}
	if err := render.Table(w, cols, page.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d, %d of %d\n", max(page.Page, 1), len(page.Items), page.Total)
	return err
}

func printRecord(cmd *cobra.Command, v any) error {
	return render.JSON(cmd.OutOrStdout(), v)
}

// printFieldErrors lists validation problems of a rejected form.
func printFieldErrors(w io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", f, errs[f])
	}
}

// Shown reports whether err was already presented to the user, either as a
// mutation notification or as a login prompt.
func Shown(err error) bool {
	return errors.Is(err, domain.ErrMutationFailed) || errors.Is(err, domain.ErrUnauthenticated)
}

// reported marks err as already shown to the user by a mutation notification.
func reported(err error) error {
	if err == nil || errors.Is(err, domain.ErrMutationFailed) {
		return err
	}
	return errors.Join(domain.ErrMutationFailed, err)
}

func activeText(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
