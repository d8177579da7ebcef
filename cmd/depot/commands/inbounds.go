package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newInboundsCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntityInbound, resourceDef[domain.Inbound, domain.InboundInput]{
		short:   "Manage goods receipts",
		aliases: []string{"inbound", "receipts", "in"},
		resource: func(f *features.Features) *features.Resource[domain.Inbound, domain.InboundInput] {
			return f.Inbounds.Resource
		},
		columns: []render.Column[domain.Inbound]{
			{Title: "ID", Value: func(v domain.Inbound) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Inbound) string { return v.Code }},
			{Title: "Supplier", Value: func(v domain.Inbound) string { return v.SupplierID }},
			{Title: "Warehouse", Value: func(v domain.Inbound) string { return v.WarehouseID }},
			{Title: "Status", Value: func(v domain.Inbound) string { return string(v.Status) }, Status: true},
			{Title: "Total", Value: func(v domain.Inbound) string { return money(v.Total) }},
		},
	})

	cmd.AddCommand(
		c.newInboundOverviewCmd(),
		newChildCmd(c, childDef[domain.InboundItem]{
			use:   "items",
			short: "Manage the product lines of a receipt",
			columns: []render.Column[domain.InboundItem]{
				{Title: "ID", Value: func(v domain.InboundItem) string { return v.ID }},
				{Title: "Product", Value: func(v domain.InboundItem) string { return v.ProductID }},
				{Title: "Quantity", Value: func(v domain.InboundItem) string { return itoa(v.Quantity) }},
				{Title: "Unit cost", Value: func(v domain.InboundItem) string { return money(v.UnitCost) }},
				{Title: "Subtotal", Value: func(v domain.InboundItem) string { return money(v.Subtotal()) }},
				{Title: "Lot", Value: func(v domain.InboundItem) string { return v.LotNumber }},
			},
			list: func(ctx context.Context, f *features.Features, owner string) ([]domain.InboundItem, error) {
				in, err := f.Inbounds.FetchDetail(ctx, owner)
				if err != nil {
					return nil, err
				}
				return in.Items, nil
			},
			add:    func(f *features.Features) childWrite[domain.InboundItem] { return write(f.Inbounds.AddItem) },
			update: func(f *features.Features) childWrite[domain.InboundItem] { return write(f.Inbounds.UpdateItem) },
			remove: func(f *features.Features) childWrite[domain.InboundItem] { return write(f.Inbounds.RemoveItem) },
		}),
		&cobra.Command{
			Use:       "transition <id> <status>",
			Short:     "Move a receipt to another status",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"draft", "pending", "approved", "completed", "cancelled"},
			RunE: func(cmd *cobra.Command, args []string) error {
				in := c.app.Features().Inbounds
				// Load the receipt so the move is checked against its current status.
				if _, err := in.FetchDetail(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := in.Transition.MutateAsync(cmd.Context(), features.Transition{
					ID:     args[0],
					Status: domain.InboundStatus(args[1]),
				})
				return reported(err)
			},
		},
		&cobra.Command{
			Use:   "attach <id> <file>",
			Short: "Upload a file to a receipt",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				upload, closer, err := openUpload(args[1])
				if err != nil {
					return err
				}
				defer func() { _ = closer.Close() }()

				att, err := c.app.Features().Inbounds.UploadAttachment.MutateAsync(cmd.Context(), features.Attachment{ID: args[0], File: upload})
				if err != nil {
					return reported(err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), att.URL)
				return err
			},
		},
		&cobra.Command{
			Use:   "pdf <id>",
			Short: "Download a printable receipt",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := c.app.Features().Inbounds.PrintPDF.MutateAsync(cmd.Context(), args[0])
				if err != nil {
					return reported(err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		},
	)
	return cmd
}

func (c *CLI) newInboundOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show receipt totals by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := c.app.Features().Inbounds.FetchOverview(cmd.Context())
			if err != nil {
				return err
			}
			if c.wantsJSON(cmd.OutOrStdout()) {
				return printRecord(cmd, ov)
			}
			return render.Pairs(cmd.OutOrStdout(), [][2]string{
				{"Total", itoa(ov.Total)},
				{"Draft", itoa(ov.Draft)},
				{"Pending", itoa(ov.Pending)},
				{"Approved", itoa(ov.Approved)},
				{"Completed", itoa(ov.Completed)},
				{"Value", money(ov.Value)},
			})
		},
	}
}
