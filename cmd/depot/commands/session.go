package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/ui/render"
)

func (c *CLI) newLoginCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the session token used for backend requests",
		Long:  "Store the session token used for backend requests. Without --token the token is read from the first line of stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
				token = readLine(cmd.InOrStdin())
			}
			return c.app.Login(token)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Session token")
	return cmd
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token and the cached data",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.Logout()
		},
	}
}

func (c *CLI) newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "overview",
		Aliases: []string{"dashboard"},
		Short:   "Show the dashboard totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := c.app.Overview(cmd.Context())
			if err != nil {
				return err
			}
			if c.wantsJSON(cmd.OutOrStdout()) {
				return printRecord(cmd, ov)
			}
			return render.Pairs(cmd.OutOrStdout(), [][2]string{
				{"Customers", itoa(ov.Customers.Total)},
				{"Categories", itoa(ov.Categories)},
				{"Receipts", itoa(ov.Inbounds.Total)},
				{"Pending", itoa(ov.Inbounds.Pending)},
				{"Receipt value", money(ov.Inbounds.Value)},
				{"Products", itoa(ov.Inventory.Products)},
				{"Low stock", itoa(ov.Inventory.LowStock)},
				{"Out of stock", itoa(ov.Inventory.OutOfStock)},
			})
		},
	}
}
