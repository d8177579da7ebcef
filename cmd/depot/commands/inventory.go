package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

var stockColumns = []render.Column[domain.InventoryItem]{
	{Title: "ID", Value: func(v domain.InventoryItem) string { return v.ID }},
	{Title: "SKU", Value: func(v domain.InventoryItem) string { return v.SKU }},
	{Title: "Product", Value: func(v domain.InventoryItem) string { return v.ProductName }},
	{Title: "Warehouse", Value: func(v domain.InventoryItem) string { return v.WarehouseID }},
	{Title: "Location", Value: func(v domain.InventoryItem) string { return v.LocationCode }},
	{Title: "On hand", Value: func(v domain.InventoryItem) string { return itoa(v.Quantity) }},
	{Title: "Available", Value: func(v domain.InventoryItem) string { return itoa(v.Available()) }},
	{Title: "Level", Value: stockLevel, Status: true},
}

func stockLevel(v domain.InventoryItem) string {
	switch {
	case v.Available() <= 0:
		return "out"
	case v.LowStock():
		return "low"
	default:
		return "ok"
	}
}

func (c *CLI) newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"stock", "inv"},
		Short:   "Inspect and move stock",
		Args:    cobra.NoArgs,
	}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.Features().Inventory.FetchList(cmd.Context(), lf.params())
			if err != nil {
				return err
			}
			return printPage(c, cmd, stockColumns, page)
		},
	}
	lf.register(list)

	var mf listFlags
	movements := &cobra.Command{
		Use:   "movements <id>",
		Short: "Show the history of a stock row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.app.Features().Inventory.FetchMovements(cmd.Context(), args[0], mf.params())
			if err != nil {
				return err
			}
			return printPage(c, cmd, []render.Column[domain.Movement]{
				{Title: "Date", Value: func(v domain.Movement) string { return v.CreatedAt.Format("2006-01-02 15:04") }},
				{Title: "Type", Value: func(v domain.Movement) string { return v.Type }},
				{Title: "Delta", Value: func(v domain.Movement) string { return itoa(v.Delta) }},
				{Title: "Balance", Value: func(v domain.Movement) string { return itoa(v.Balance) }},
				{Title: "Reference", Value: func(v domain.Movement) string { return v.Reference }},
			}, page)
		},
	}
	mf.register(movements)

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one stock row",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := c.app.Features().Inventory.FetchDetail(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printRecord(cmd, item)
			},
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Show stock totals across warehouses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := c.app.Features().Inventory.FetchSummary(cmd.Context())
				if err != nil {
					return err
				}
				if c.wantsJSON(cmd.OutOrStdout()) {
					return printRecord(cmd, s)
				}
				return render.Pairs(cmd.OutOrStdout(), [][2]string{
					{"Products", itoa(s.Products)},
					{"On hand", itoa(s.Quantity)},
					{"Reserved", itoa(s.Reserved)},
					{"Low stock", itoa(s.LowStock)},
					{"Out of stock", itoa(s.OutOfStock)},
				})
			},
		},
		movements,
		c.newAdjustCmd(),
		c.newTransferCmd(),
		newExportCmd(func() exporter { return c.app.Features().Inventory.Export }),
	)
	return cmd
}

func (c *CLI) newAdjustCmd() *cobra.Command {
	var adj domain.Adjustment
	cmd := &cobra.Command{
		Use:   "adjust <id>",
		Short: "Correct the on-hand quantity of a stock row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.app.Features().Inventory.Adjust.MutateAsync(cmd.Context(), features.Adjust{ID: args[0], Adjustment: adj})
			if err != nil {
				return reported(err)
			}
			return printRecord(cmd, item)
		},
	}
	cmd.Flags().IntVar(&adj.Delta, "delta", 0, "Quantity to add, negative to remove")
	cmd.Flags().StringVar(&adj.Reason, "reason", "", "Reason code")
	cmd.Flags().StringVar(&adj.Note, "note", "", "Free text note")
	_ = cmd.MarkFlagRequired("delta")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func (c *CLI) newTransferCmd() *cobra.Command {
	var t domain.Transfer
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move stock of a product between warehouses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := c.app.Features().Inventory.Transfer.MutateAsync(cmd.Context(), t)
			if err != nil {
				return reported(err)
			}
			return printRows(c, cmd, stockColumns, rows)
		},
	}
	f := cmd.Flags()
	f.StringVar(&t.ProductID, "product", "", "Product to move")
	f.StringVar(&t.FromWarehouseID, "from", "", "Source warehouse")
	f.StringVar(&t.ToWarehouseID, "to", "", "Destination warehouse")
	f.IntVar(&t.Quantity, "quantity", 0, "Quantity to move")
	f.StringVar(&t.Note, "note", "", "Free text note")
	for _, name := range []string{"product", "from", "to", "quantity"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
