package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newCategoriesCmd() *cobra.Command {
	cmd := newResourceCmd(c, domain.EntityCategory, resourceDef[domain.Category, domain.CategoryInput]{
		short:   "Manage product categories",
		aliases: []string{"category", "cat"},
		resource: func(f *features.Features) *features.Resource[domain.Category, domain.CategoryInput] {
			return f.Categories.Resource
		},
		columns: []render.Column[domain.Category]{
			{Title: "ID", Value: func(v domain.Category) string { return v.ID }},
			{Title: "Code", Value: func(v domain.Category) string { return v.Code }},
			{Title: "Name", Value: func(v domain.Category) string { return v.Name }},
			{Title: "Parent", Value: func(v domain.Category) string { return v.ParentID }},
			{Title: "Status", Value: func(v domain.Category) string { return activeText(v.Active) }, Status: true},
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Show the category hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forest, err := c.app.Features().Categories.FetchTree(cmd.Context())
			if err != nil {
				return err
			}
			if c.wantsJSON(cmd.OutOrStdout()) {
				return printRecord(cmd, forest)
			}
			root := tree.Root("Categories")
			addCategories(root, forest)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), root.String())
			return err
		},
	})
	return cmd
}

func addCategories(parent *tree.Tree, nodes []domain.Category) {
	for _, n := range nodes {
		label := n.Name
		if n.Code != "" {
			label = fmt.Sprintf("%s (%s)", n.Name, n.Code)
		}
		if len(n.Children) == 0 {
			parent.Child(label)
			continue
		}
		sub := tree.Root(label)
		addCategories(sub, n.Children)
		parent.Child(sub)
	}
}
