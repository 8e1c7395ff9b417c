package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/ux"
)

func newGISCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("gis", "Query project locations")
	cmd.AddCommand(
		newGISProjectsCommand(cc),
		newGISStatsCommand(cc),
		newGISSetLocationCommand(cc),
	)
	return cmd
}

func newGISProjectsCommand(cc *CommandContext) *cobra.Command {
	var filter api.GISFilter

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List project markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.GIS.Projects(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to load map projects: %w", err)
			}
			return cc.Print(cmd, gisTable(env.Data), env.Data)
		},
	}

	cmd.Flags().StringVar(&filter.Type, "type", "", "project type")
	cmd.Flags().StringVar(&filter.Category, "category", "", "consulting category")
	cmd.Flags().StringVar(&filter.Country, "country", "", "country")
	cmd.Flags().StringVar(&filter.Status, "status", "", "status")
	cmd.Flags().StringVar(&filter.Search, "search", "", "search text")
	cmd.Flags().BoolVar(&filter.ExcludeConsulting, "no-consulting", false, "leave out consulting projects")
	return cmd
}

func newGISStatsCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show map statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.GIS.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to load map statistics: %w", err)
			}
			s := env.Data
			t := ux.NewTable("METRIC", "VALUE")
			t.Append("전체", strconv.Itoa(s.Total))
			t.Append("ODA", strconv.Itoa(s.ODA))
			t.Append("기술용역", strconv.Itoa(s.Consulting))
			for _, row := range countTable("", s.ByCountry, nil).Rows {
				t.Append("국가: "+row[0], row[1])
			}
			return cc.Print(cmd, t, s)
		},
	}
}

func newGISSetLocationCommand(cc *CommandContext) *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "set-location <project-id>",
		Short: "Set the coordinates of a project",
		Long: `Set the coordinates of a project.

Examples:
  gbms gis set-location 7 --lat 11.5564 --lng 104.9282`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if lat < -90 || lat > 90 {
				return fmt.Errorf("invalid argument --lat %v: must be between -90 and 90", lat)
			}
			if lng < -180 || lng > 180 {
				return fmt.Errorf("invalid argument --lng %v: must be between -180 and 180", lng)
			}
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.GIS.UpdateLocation(ctx, id, lat, lng)
			if err != nil {
				return fmt.Errorf("failed to update location of project %d: %w", id, err)
			}
			return printResult(cc, cmd, env, "위치가 저장되었습니다.")
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func gisTable(projects []api.GISProject) *ux.Table {
	t := ux.NewTable("SOURCE", "TITLE", "TYPE", "STATUS", "LAT", "LNG", "BUDGET")
	for _, p := range projects {
		title := p.Title
		if title == "" {
			title = p.Name
		}
		t.Append(p.Source, title, format.ProjectTypeLabel(p.Type), format.StatusBadge(p.Status).Label,
			coord(p.Latitude), coord(p.Longitude), format.LargeCurrency(p.BudgetTotal))
	}
	return t
}

func coord(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
