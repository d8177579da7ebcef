package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newWarehousesCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntityWarehouse, resourceDef[domain.Warehouse, domain.WarehouseInput]{
		short:   "Manage warehouses",
		aliases: []string{"warehouse", "wh"},
		resource: func(f *features.Features) *features.Resource[domain.Warehouse, domain.WarehouseInput] {
			return f.Warehouses.Resource
		},
		columns: []render.Column[domain.Warehouse]{
			{Title: "ID", Value: func(v domain.Warehouse) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Warehouse) string { return v.Code }},
			{Title: "Name", Value: func(v domain.Warehouse) string { return v.Name }},
			{Title: "Manager", Value: func(v domain.Warehouse) string { return v.Manager }},
			{Title: "Capacity", Value: func(v domain.Warehouse) string { return itoa(v.Capacity) }},
			{Title: "Status", Value: func(v domain.Warehouse) string { return activeText(v.Active) }, Status: true},
		},
	})

	cmd.AddCommand(newChildCmd(c, childDef[domain.Location]{
		use:   "locations",
		short: "Manage bins and shelves",
		columns: []render.Column[domain.Location]{
			{Title: "ID", Value: func(v domain.Location) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Location) string { return v.Code }},
			{Title: "Zone", Value: func(v domain.Location) string { return v.Zone }},
			{Title: "Capacity", Value: func(v domain.Location) string { return itoa(v.Capacity) }},
		},
		list: func(ctx context.Context, f *features.Features, owner string) ([]domain.Location, error) {
			return observed(f.Warehouses.Locations)(ctx, owner)
		},
		add:    func(f *features.Features) childWrite[domain.Location] { return write(f.Warehouses.AddLocation) },
		remove: func(f *features.Features) childWrite[domain.Location] { return write(f.Warehouses.DeleteLocation) },
	}))
	return cmd
}
