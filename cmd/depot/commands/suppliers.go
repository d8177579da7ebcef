package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newSuppliersCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntitySupplier, resourceDef[domain.Supplier, domain.SupplierInput]{
		short:   "Manage suppliers",
		aliases: []string{"supplier", "sup"},
		resource: func(f *features.Features) *features.Resource[domain.Supplier, domain.SupplierInput] {
			return f.Suppliers.Resource
		},
		columns: []render.Column[domain.Supplier]{
			{Title: "ID", Value: func(v domain.Supplier) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Supplier) string { return v.Code }},
			{Title: "Name", Value: func(v domain.Supplier) string { return v.Name }},
			{Title: "Phone", Value: func(v domain.Supplier) string { return v.Phone }},
			{Title: "Tax code", Value: func(v domain.Supplier) string { return v.TaxCode }},
			{Title: "Status", Value: func(v domain.Supplier) string { return activeText(v.Active) }, Status: true},
		},
	})

	cmd.AddCommand(newChildCmd(c, childDef[domain.Contact]{
		use:     "contacts",
		short:   "Manage supplier contacts",
		columns: contactColumns,
		list: func(ctx context.Context, f *features.Features, owner string) ([]domain.Contact, error) {
			return observed(f.Suppliers.Contacts)(ctx, owner)
		},
		add:    func(f *features.Features) childWrite[domain.Contact] { return write(f.Suppliers.AddContact) },
		remove: func(f *features.Features) childWrite[domain.Contact] { return write(f.Suppliers.DeleteContact) },
	}))
	return cmd
}
