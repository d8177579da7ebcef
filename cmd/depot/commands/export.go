package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
)

// exporter downloads a list as a spreadsheet and returns the saved path.
type exporter interface {
	MutateAsync(ctx context.Context, params domain.ListParams) (string, error)
}

func newExportCmd(export func() exporter) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the filtered list as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := export().MutateAsync(cmd.Context(), lf.params())
			if err != nil {
				return reported(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	lf.register(cmd)
	return cmd
}
