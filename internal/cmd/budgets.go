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

var budgetsCRUD = crud[api.Budget]{
	noun:  "budget",
	label: "예산",
	get: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[api.Budget], error) {
		return c.Budgets.Get(ctx, id)
	},
	create: func(ctx context.Context, c *api.Client, body any) (*api.Envelope[api.Budget], error) {
		return c.Budgets.Create(ctx, body)
	},
	update: func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[api.Budget], error) {
		return c.Budgets.Update(ctx, id, body)
	},
	remove: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error) {
		return c.Budgets.Delete(ctx, id)
	},
	detail: budgetDetail,
	id:     func(b api.Budget) int { return b.ID },
}

func newBudgetsCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("budgets", "Manage project budgets", "budget")
	cmd.AddCommand(
		newBudgetsListCommand(cc),
		newBudgetsAddExecutionCommand(cc),
		newBudgetsStatsCommand(cc),
	)
	cmd.AddCommand(budgetsCRUD.commands(cc)...)
	return cmd
}

func newBudgetsListCommand(cc *CommandContext) *cobra.Command {
	var (
		filter api.BudgetFilter
		page   listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budget lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			filter.Page, filter.PerPage = page.page, page.perPage
			env, err := app.Client.Budgets.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}
			if err := cc.Print(cmd, budgetTable(env.Data), env); err != nil {
				return err
			}
			printPage(cc, cmd, env)
			return nil
		},
	}

	page.register(cmd)
	cmd.Flags().IntVar(&filter.ProjectID, "project", 0, "project ID")
	cmd.Flags().IntVar(&filter.Year, "year", 0, "budget year")
	cmd.Flags().StringVar(&filter.Category, "category", "", "budget category")
	return cmd
}

func newBudgetsAddExecutionCommand(cc *CommandContext) *cobra.Command {
	var exec api.Execution

	cmd := &cobra.Command{
		Use:   "add-execution <budget-id>",
		Short: "Record a spend against a budget line",
		Long: `Record a spend against a budget line.

Examples:
  gbms budgets add-execution 12 --amount 1500000 --date 2025-03-31 --voucher V-0042`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if exec.Amount <= 0 {
				return fmt.Errorf("invalid argument --amount: must be positive")
			}
			if _, err := format.ParseDate(exec.ExecutionDate); err != nil {
				return fmt.Errorf("invalid argument --date: %w", err)
			}
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Budgets.AddExecution(ctx, id, exec)
			if err != nil {
				return fmt.Errorf("failed to record execution for budget %d: %w", id, err)
			}
			return printResult(cc, cmd, env, fmt.Sprintf("집행 내역이 등록되었습니다. (%s)", format.Currency(exec.Amount)))
		},
	}

	cmd.Flags().Float64Var(&exec.Amount, "amount", 0, "amount in KRW")
	cmd.Flags().StringVar(&exec.ExecutionDate, "date", "", "execution date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exec.Description, "description", "", "description")
	cmd.Flags().StringVar(&exec.VoucherNo, "voucher", "", "voucher number")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newBudgetsStatsCommand(cc *CommandContext) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show budget statistics for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Budgets.Stats(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to get budget statistics: %w", err)
			}
			return cc.Print(cmd, budgetStatsTable(env.Data), env.Data)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (default current year)")
	return cmd
}

func budgetDetail(b api.Budget) *ux.Table {
	t := ux.NewTable("FIELD", "VALUE")
	t.Append("id", strconv.Itoa(b.ID))
	t.Append("project", strconv.Itoa(b.ProjectID))
	t.Append("year", strconv.Itoa(b.Year))
	t.Append("category", b.Category)
	if b.SubCategory != "" {
		t.Append("sub category", b.SubCategory)
	}
	if b.Description != "" {
		t.Append("description", b.Description)
	}
	t.Append("planned", format.Currency(b.AmountPlanned))
	t.Append("executed", format.Currency(b.AmountExecuted))
	t.Append("remaining", format.Currency(b.AmountRemaining))
	t.Append("rate", fmt.Sprintf("%.1f%%", b.ExecutionRate))
	return t
}
