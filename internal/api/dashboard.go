package api

import (
	"context"
	"net/url"
	"strconv"
)

// Default list sizes of the dashboard widgets.
const (
	DefaultRecentLimit   = 5
	DefaultActivityLimit = 10
)

// DashboardService talks to /dashboard.
type DashboardService struct {
	client *Client
}

func limitQuery(limit, def int) url.Values {
	if limit <= 0 {
		limit = def
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

// Overview returns the dashboard summary.
func (s *DashboardService) Overview(ctx context.Context) (*Envelope[Overview], error) {
	var out Envelope[Overview]
	if err := s.client.Get(ctx, "/dashboard/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentProjects returns the most recently updated projects.
func (s *DashboardService) RecentProjects(ctx context.Context, limit int) (*Envelope[[]Project], error) {
	var out Envelope[[]Project]
	if err := s.client.Get(ctx, "/dashboard/recent-projects", limitQuery(limit, DefaultRecentLimit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpcomingEvents returns the nearest project deadlines.
func (s *DashboardService) UpcomingEvents(ctx context.Context, limit int) (*Envelope[[]Event], error) {
	var out Envelope[[]Event]
	if err := s.client.Get(ctx, "/dashboard/upcoming-events", limitQuery(limit, DefaultRecentLimit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DepartmentBudgets returns this year's budget per department.
func (s *DashboardService) DepartmentBudgets(ctx context.Context) (*Envelope[[]DepartmentBudget], error) {
	var out Envelope[[]DepartmentBudget]
	if err := s.client.Get(ctx, "/dashboard/department-budgets", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountryStats returns project counts per country.
func (s *DashboardService) CountryStats(ctx context.Context) (*Envelope[[]CountryStat], error) {
	var out Envelope[[]CountryStat]
	if err := s.client.Get(ctx, "/dashboard/country-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivityLog returns the latest audit entries.
func (s *DashboardService) ActivityLog(ctx context.Context, limit int) (*Envelope[[]Activity], error) {
	var out Envelope[[]Activity]
	if err := s.client.Get(ctx, "/dashboard/activity-log", limitQuery(limit, DefaultActivityLimit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
