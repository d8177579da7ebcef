package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newProductsCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntityProduct, resourceDef[domain.Product, domain.ProductInput]{
		short:   "Manage products",
		aliases: []string{"product", "prod"},
		resource: func(f *features.Features) *features.Resource[domain.Product, domain.ProductInput] {
			return f.Products.Resource
		},
		columns: []render.Column[domain.Product]{
			{Title: "ID", Value: func(v domain.Product) string { return v.ID }},
			{Title: "SKU", Value: func(v domain.Product) string { return v.SKU }},
			{Title: "Name", Value: func(v domain.Product) string { return v.Name }},
			{Title: "Unit", Value: func(v domain.Product) string { return v.Unit }},
			{Title: "Price", Value: func(v domain.Product) string { return money(v.Price) }},
			{Title: "Margin", Value: func(v domain.Product) string { return money(v.Margin()) }},
			{Title: "Status", Value: func(v domain.Product) string { return activeText(v.Active) }, Status: true},
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "image <id> <file>",
		Short: "Replace the picture of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, closer, err := openUpload(args[1])
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			p, err := c.app.Features().Products.UploadImage.MutateAsync(cmd.Context(), features.Image{ID: args[0], File: upload})
			if err != nil {
				return reported(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.ImageURL)
			return err
		},
	})
	return cmd
}
