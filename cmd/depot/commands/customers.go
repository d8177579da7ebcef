package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newCustomersCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntityCustomer, resourceDef[domain.Customer, domain.CustomerInput]{
		short:   "Manage customers",
		aliases: []string{"customer", "cus"},
		resource: func(f *features.Features) *features.Resource[domain.Customer, domain.CustomerInput] {
			return f.Customers.Resource
		},
		columns: []render.Column[domain.Customer]{
			{Title: "ID", Value: func(v domain.Customer) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Customer) string { return v.Code }},
			{Title: "Name", Value: func(v domain.Customer) string { return v.Name }},
			{Title: "Phone", Value: func(v domain.Customer) string { return v.Phone }},
			{Title: "Email", Value: func(v domain.Customer) string { return v.Email }},
			{Title: "Status", Value: func(v domain.Customer) string { return activeText(v.Active) }, Status: true},
		},
	})

	cmd.AddCommand(
		&cobra.Command{
			Use:   "overview",
			Short: "Show customer totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ov, err := c.app.Features().Customers.FetchOverview(cmd.Context())
				if err != nil {
					return err
				}
				if c.wantsJSON(cmd.OutOrStdout()) {
					return printRecord(cmd, ov)
				}
				return render.Pairs(cmd.OutOrStdout(), [][2]string{
					{"Total", itoa(ov.Total)},
					{"Active", itoa(ov.Active)},
					{"Inactive", itoa(ov.Inactive)},
					{"New this month", itoa(ov.NewThisMonth)},
				})
			},
		},
		newChildCmd(c, childDef[domain.Address]{
			use:   "addresses",
			short: "Manage customer addresses",
			columns: []render.Column[domain.Address]{
				{Title: "ID", Value: func(v domain.Address) string { return v.ID }},
				{Title: "Label", Value: func(v domain.Address) string { return v.Label }},
				{Title: "Address", Value: func(v domain.Address) string { return v.Line }},
				{Title: "City", Value: func(v domain.Address) string { return v.City }},
				{Title: "Default", Value: func(v domain.Address) string { return yesNo(v.IsDefault) }},
			},
			list: func(ctx context.Context, f *features.Features, owner string) ([]domain.Address, error) {
				return observed(f.Customers.Addresses)(ctx, owner)
			},
			add:    func(f *features.Features) childWrite[domain.Address] { return write(f.Customers.AddAddress) },
			update: func(f *features.Features) childWrite[domain.Address] { return write(f.Customers.UpdateAddress) },
			remove: func(f *features.Features) childWrite[domain.Address] { return write(f.Customers.DeleteAddress) },
		}),
		newChildCmd(c, childDef[domain.Contact]{
			use:     "contacts",
			short:   "Manage customer contacts",
			columns: contactColumns,
			list: func(ctx context.Context, f *features.Features, owner string) ([]domain.Contact, error) {
				return observed(f.Customers.Contacts)(ctx, owner)
			},
			add:    func(f *features.Features) childWrite[domain.Contact] { return write(f.Customers.AddContact) },
			update: func(f *features.Features) childWrite[domain.Contact] { return write(f.Customers.UpdateContact) },
			remove: func(f *features.Features) childWrite[domain.Contact] { return write(f.Customers.DeleteContact) },
		}),
	)
	return cmd
}

var contactColumns = []render.Column[domain.Contact]{
	{Title: "ID", Value: func(v domain.Contact) string { return v.ID }},
	{Title: "Name", Value: func(v domain.Contact) string { return v.Name }},
	{Title: "Position", Value: func(v domain.Contact) string { return v.Position }},
	{Title: "Phone", Value: func(v domain.Contact) string { return v.Phone }},
	{Title: "Email", Value: func(v domain.Contact) string { return v.Email }},
	{Title: "Primary", Value: func(v domain.Contact) string { return yesNo(v.Primary) }},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
