package cmd

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/shell"
	"github.com/krcglobal/gbms/internal/ux"
)

func newDashboardCommand(cc *CommandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		Long: `Without a subcommand, load the overview, recent projects and upcoming
events together and print the summary shown on the home page. Parts that
fail to load are reported and the rest is still printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			s := shell.New(app.Auth, app.Client.Dashboard, app.Store, shell.WithLogger(app.Logger))
			loadErr := s.LoadDashboard(ctx)
			data := s.Dashboard()

			nothing := data.Overview == nil && data.Recent == nil && data.Upcoming == nil
			if loadErr != nil && (nothing || stderrors.Is(loadErr, api.ErrSessionExpired)) {
				return fmt.Errorf("failed to load dashboard: %w", loadErr)
			}
			if loadErr != nil {
				app.Logger.WithError(loadErr).WarnContext(ctx, "dashboard partially loaded")
			}
			if !cc.textOutput() {
				return cc.Print(cmd, nil, data)
			}

			out := cmd.OutOrStdout()
			if err := statsTable(data.Stats).Write(out); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n최근 사업")
			if err := projectTable(data.Recent).Write(out); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n다가오는 일정")
			if err := eventTable(data.Upcoming).Write(out); err != nil {
				return err
			}
			if loadErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n일부 데이터를 불러오지 못했습니다: %v\n", loadErr)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newDashboardOverviewCommand(cc),
		newDashboardRecentCommand(cc),
		newDashboardUpcomingCommand(cc),
		newDashboardDepartmentsCommand(cc),
		newDashboardCountriesCommand(cc),
		newDashboardActivityCommand(cc),
	)
	return cmd
}

func statsTable(s shell.Stats) *ux.Table {
	t := ux.NewTable("METRIC", "VALUE")
	t.Append("전체 사업", s.TotalProjects)
	t.Append("총 예산", s.TotalBudget)
	t.Append("진출 국가", s.TotalCountries)
	t.Append("해외 사무소", s.TotalOffices)
	t.Append("예산 집행률", s.ExecutionRate)
	return t
}

func newDashboardOverviewCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the overview statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.Overview(ctx)
			if err != nil {
				return fmt.Errorf("failed to load overview: %w", err)
			}
			o := env.Data
			t := ux.NewTable("METRIC", "VALUE")
			t.Append("전체 사업", format.Number(float64(o.Projects.Total)))
			t.Append("진행중", format.Number(float64(o.Projects.InProgress)))
			t.Append("완료", format.Number(float64(o.Projects.Completed)))
			t.Append("기획", format.Number(float64(o.Projects.Planning)))
			t.Append("진출 국가", format.Number(float64(o.Countries)))
			t.Append("해외 사무소", format.Number(float64(o.Offices)))
			t.Append("총 예산", format.LargeCurrency(o.Budget.Total))
			t.Append("집행액", format.LargeCurrency(o.Budget.Executed))
			t.Append("집행률", format.Number(o.Budget.ExecutionRate)+"%")
			return cc.Print(cmd, t, o)
		},
	}
}

func newDashboardRecentCommand(cc *CommandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently updated projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.RecentProjects(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load recent projects: %w", err)
			}
			return cc.Print(cmd, projectTable(env.Data), env.Data)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", api.DefaultRecentLimit, "number of projects")
	return cmd
}

func newDashboardUpcomingCommand(cc *CommandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming deadlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.UpcomingEvents(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load upcoming events: %w", err)
			}
			return cc.Print(cmd, eventTable(env.Data), env.Data)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", api.DefaultRecentLimit, "number of events")
	return cmd
}

func newDashboardDepartmentsCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "Show this year's budget per department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.DepartmentBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to load department budgets: %w", err)
			}
			t := ux.NewTable("DEPARTMENT", "PLANNED", "EXECUTED", "RATE")
			for _, d := range env.Data {
				name := d.DepartmentName
				if name == "" {
					name = format.DepartmentLabel(d.Department)
				}
				t.Append(name, format.LargeCurrency(d.Planned), format.LargeCurrency(d.Executed), fmt.Sprintf("%.1f%%", d.Rate))
			}
			return cc.Print(cmd, t, env.Data)
		},
	}
}

func newDashboardCountriesCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "Show project counts per country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.CountryStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to load country statistics: %w", err)
			}
			t := ux.NewTable("COUNTRY", "REGION", "PROJECTS", "BUDGET")
			for _, c := range env.Data {
				t.Append(c.Country, c.Region, strconv.Itoa(c.ProjectCount), format.LargeCurrency(c.TotalBudget))
			}
			return cc.Print(cmd, t, env.Data)
		},
	}
}

func newDashboardActivityCommand(cc *CommandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Dashboard.ActivityLog(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load activity log: %w", err)
			}
			return cc.Print(cmd, activityTable(env.Data), env.Data)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")
	return cmd
}
