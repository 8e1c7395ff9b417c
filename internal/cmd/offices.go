package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/ux"
)

var officesCRUD = crud[api.Office]{
	noun:  "office",
	label: "해외사무소",
	get: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[api.Office], error) {
		return c.Offices.Get(ctx, id)
	},
	create: func(ctx context.Context, c *api.Client, body any) (*api.Envelope[api.Office], error) {
		return c.Offices.Create(ctx, body)
	},
	update: func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[api.Office], error) {
		return c.Offices.Update(ctx, id, body)
	},
	remove: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error) {
		return c.Offices.Delete(ctx, id)
	},
	detail: officeDetail,
	id:     func(o api.Office) int { return o.ID },
}

func newOfficesCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("offices", "Manage overseas offices", "office")
	cmd.AddCommand(newOfficesListCommand(cc))
	cmd.AddCommand(officesCRUD.commands(cc)...)
	return cmd
}

func newOfficesListCommand(cc *CommandContext) *cobra.Command {
	var filter api.OfficeFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List offices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Offices.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list offices: %w", err)
			}
			return cc.Print(cmd, officeTable(env.Data), env)
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "office status")
	cmd.Flags().StringVar(&filter.Type, "type", "", "office type")
	cmd.Flags().StringVar(&filter.Region, "region", "", "region")
	return cmd
}

func officeDetail(o api.Office) *ux.Table {
	t := ux.NewTable("FIELD", "VALUE")
	t.Append("id", strconv.Itoa(o.ID))
	t.Append("name", o.Name)
	t.Append("country", o.Country)
	t.Append("city", o.City)
	t.Append("address", o.Address)
	t.Append("type", o.OfficeType)
	t.Append("status", o.Status)
	t.Append("contact", o.ContactPerson)
	t.Append("email", o.ContactEmail)
	t.Append("phone", o.ContactPhone)
	t.Append("established", o.EstablishedDate)
	t.Append("annual budget", format.Currency(o.AnnualBudget))
	return t
}
