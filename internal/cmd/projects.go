package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/ux"
)

var projectsCRUD = crud[api.Project]{
	noun:  "project",
	label: "사업",
	get: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[api.Project], error) {
		return c.Projects.Get(ctx, id)
	},
	create: func(ctx context.Context, c *api.Client, body any) (*api.Envelope[api.Project], error) {
		return c.Projects.Create(ctx, body)
	},
	update: func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[api.Project], error) {
		return c.Projects.Update(ctx, id, body)
	},
	remove: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error) {
		return c.Projects.Delete(ctx, id)
	},
	detail: projectDetail,
	id:     func(p api.Project) int { return p.ID },
}

func newProjectsCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("projects", "Manage overseas projects", "project")
	cmd.AddCommand(newProjectsListCommand(cc), newProjectsStatsCommand(cc))
	cmd.AddCommand(projectsCRUD.commands(cc)...)
	return cmd
}

func newProjectsListCommand(cc *CommandContext) *cobra.Command {
	var (
		filter api.ProjectFilter
		page   listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects, optionally filtered.

Examples:
  gbms projects list --type oda_bilateral
  gbms projects list --department gad --status in_progress -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			filter.Page, filter.PerPage = page.page, page.perPage
			env, err := app.Client.Projects.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			if err := cc.Print(cmd, projectTable(env.Data), env); err != nil {
				return err
			}
			printPage(cc, cmd, env)
			return nil
		},
	}

	page.register(cmd)
	cmd.Flags().StringVar(&filter.Type, "type", "", "project type code")
	cmd.Flags().StringVar(&filter.Department, "department", "", "department code")
	cmd.Flags().StringVar(&filter.Status, "status", "", "status: planning, in_progress, completed, suspended or cancelled")
	cmd.Flags().StringVar(&filter.Country, "country", "", "country name")
	cmd.Flags().IntVar(&filter.Year, "year", 0, "project year")
	cmd.Flags().StringVar(&filter.Search, "search", "", "search text")
	return cmd
}

func newProjectsStatsCommand(cc *CommandContext) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show project statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Projects.Stats(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to get project statistics: %w", err)
			}
			return cc.Print(cmd, projectStatsTable(env.Data), env.Data)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "limit to one year")
	return cmd
}

func projectStatsTable(s api.ProjectStats) *ux.Table {
	t := ux.NewTable("METRIC", "VALUE")
	t.Append("전체", format.Number(float64(s.Total)))
	t.Append("진행중", format.Number(float64(s.InProgress)))
	t.Append("완료", format.Number(float64(s.Completed)))
	t.Append("기획", format.Number(float64(s.Planning)))
	t.Append("총 예산", format.LargeCurrency(s.TotalBudget))
	for _, row := range countTable("", s.ByType, format.ProjectTypeLabel).Rows {
		t.Append("유형: "+row[0], row[1])
	}
	for _, row := range countTable("", s.ByDepartment, format.DepartmentLabel).Rows {
		t.Append("부서: "+row[0], row[1])
	}
	return t
}
