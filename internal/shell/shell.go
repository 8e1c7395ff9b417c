// Package shell is the authenticated application frame: header user info,
// the collapsible sidebar, the active navigation item and the dashboard
// summary shown on the home page.
package shell

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/storage"
	"github.com/krcglobal/gbms/internal/ui"
)

// Guard is the part of auth.Manager the shell needs.
type Guard interface {
	RequireAuth(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*session.User, bool)
	Logout(ctx context.Context) error
}

// Dashboard is the part of api.DashboardService the shell loads.
type Dashboard interface {
	Overview(ctx context.Context) (*api.Envelope[api.Overview], error)
	RecentProjects(ctx context.Context, limit int) (*api.Envelope[[]api.Project], error)
	UpcomingEvents(ctx context.Context, limit int) (*api.Envelope[[]api.Event], error)
}

// NavItem is one sidebar entry.
type NavItem struct {
	Label string
	Href  string
}

// DefaultNav is the sidebar of the web client.
var DefaultNav = []NavItem{
	{Label: "대시보드", Href: "dashboard.html"},
	{Label: "사업관리", Href: "projects.html"},
	{Label: "예산관리", Href: "budgets.html"},
	{Label: "문서관리", Href: "documents.html"},
	{Label: "해외사무소", Href: "offices.html"},
	{Label: "GIS", Href: "gis.html"},
	{Label: "사용자관리", Href: "users.html"},
}

// ActiveNav returns the index of the first item whose href, without its
// ".html" suffix, is contained in path, or -1.
func ActiveNav(path string, items []NavItem) int {
	for i, item := range items {
		if item.Href == "" {
			continue
		}
		if strings.Contains(path, strings.TrimSuffix(item.Href, ".html")) {
			return i
		}
	}
	return -1
}

// Stats are the formatted headline numbers of the dashboard.
type Stats struct {
	TotalProjects  string `json:"totalProjects" yaml:"total_projects"`
	TotalBudget    string `json:"totalBudget" yaml:"total_budget"`
	TotalCountries string `json:"totalCountries" yaml:"total_countries"`
	TotalOffices   string `json:"totalOffices" yaml:"total_offices"`
	ExecutionRate  string `json:"executionRate" yaml:"execution_rate"`
}

// DashboardData is what the home page renders.
type DashboardData struct {
	Overview *api.Overview `json:"overview,omitempty" yaml:"overview,omitempty"`
	Recent   []api.Project `json:"recent" yaml:"recent"`
	Upcoming []api.Event   `json:"upcoming" yaml:"upcoming"`
	Stats    Stats         `json:"stats" yaml:"stats"`
}

// HeaderInfo is the signed-in user as shown in the header.
type HeaderInfo struct {
	Name       string
	Department string
	Avatar     string
}

// Shell is the application frame of one signed-in user.
type Shell struct {
	guard     Guard
	dashboard Dashboard
	store     storage.Store
	toasts    *ui.ToastQueue
	logger    *log.Logger

	mu        sync.Mutex
	header    HeaderInfo
	collapsed bool
	data      DashboardData
}

// Option customizes a Shell.
type Option func(*Shell)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		s.logger = log.OrDefault(l)
	}
}

// WithToasts sets the queue load errors are reported to.
func WithToasts(q *ui.ToastQueue) Option {
	return func(s *Shell) {
		if q != nil {
			s.toasts = q
		}
	}
}

// New creates a shell.
func New(guard Guard, dashboard Dashboard, store storage.Store, opts ...Option) *Shell {
	s := &Shell{
		guard:     guard,
		dashboard: dashboard,
		store:     store,
		toasts:    ui.NewToastQueue(nil),
		logger:    log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init prepares the shell for an authenticated user. It returns false
// without loading anything when the user is not signed in; the guard has
// already navigated to the entry page. Dashboard load failures are shown
// as toasts and do not fail Init, except an expired session, which
// returns false.
func (s *Shell) Init(ctx context.Context) bool {
	if !s.guard.RequireAuth(ctx) {
		return false
	}

	s.loadHeader(ctx)
	s.restoreSidebar()

	if err := s.LoadDashboard(ctx); err != nil {
		if stderrors.Is(err, api.ErrSessionExpired) {
			s.logger.InfoContext(ctx, "session expired during dashboard load")
			s.mu.Lock()
			s.header = HeaderInfo{}
			s.mu.Unlock()
			return false
		}
		s.toasts.Error(err.Error())
		s.logger.WithError(err).WarnContext(ctx, "dashboard load failed")
	}

	s.logger.DebugContext(ctx, "shell initialized")
	return true
}

func (s *Shell) loadHeader(ctx context.Context) {
	user, ok := s.guard.CurrentUser(ctx)
	if !ok {
		return
	}

	h := HeaderInfo{Name: user.Name, Department: user.DepartmentName}
	if h.Department == "" {
		h.Department = format.DepartmentLabel(user.Department)
	}
	if r := []rune(user.Name); len(r) > 0 {
		h.Avatar = string(r[0])
	}

	s.mu.Lock()
	s.header = h
	s.mu.Unlock()
}

func (s *Shell) restoreSidebar() {
	collapsed := storage.GetDefault(s.store, storage.KeySidebarCollapsed, false)
	s.mu.Lock()
	s.collapsed = collapsed
	s.mu.Unlock()
}

// LoadDashboard fetches the overview, recent projects and upcoming events
// concurrently. Parts that load are kept even when another part fails; the
// first failure is returned.
func (s *Shell) LoadDashboard(ctx context.Context) error {
	var (
		g        errgroup.Group
		overview *api.Overview
		recent   []api.Project
		upcoming []api.Event
	)

	g.Go(func() error {
		env, err := s.dashboard.Overview(ctx)
		if err != nil {
			return err
		}
		overview = &env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.dashboard.RecentProjects(ctx, api.DefaultRecentLimit)
		if err != nil {
			return err
		}
		recent = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.dashboard.UpcomingEvents(ctx, api.DefaultRecentLimit)
		if err != nil {
			return err
		}
		upcoming = env.Data
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if overview != nil {
		s.data.Overview = overview
		s.data.Stats = statsOf(overview)
	}
	if recent != nil {
		s.data.Recent = recent
	}
	if upcoming != nil {
		s.data.Upcoming = upcoming
	}
	return err
}

func statsOf(o *api.Overview) Stats {
	return Stats{
		TotalProjects:  format.Number(float64(o.Projects.Total)),
		TotalBudget:    format.LargeCurrency(o.Budget.Total),
		TotalCountries: format.Number(float64(o.Countries)),
		TotalOffices:   format.Number(float64(o.Offices)),
		ExecutionRate:  format.Number(o.Budget.ExecutionRate) + "%",
	}
}

// ToggleSidebar flips and persists the sidebar state and returns the new
// state. A failed write keeps the in-memory state.
func (s *Shell) ToggleSidebar() bool {
	s.mu.Lock()
	s.collapsed = !s.collapsed
	collapsed := s.collapsed
	s.mu.Unlock()

	if !s.store.Set(storage.KeySidebarCollapsed, collapsed) {
		s.logger.Warn("failed to persist sidebar state")
	}
	return collapsed
}

// SidebarCollapsed reports the sidebar state.
func (s *Shell) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed
}

// Header returns the header user info.
func (s *Shell) Header() HeaderInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.header
}

// Dashboard returns the last loaded dashboard data.
func (s *Shell) Dashboard() DashboardData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Toasts returns the shell's toast queue.
func (s *Shell) Toasts() *ui.ToastQueue {
	return s.toasts
}

// Logout signs the user out.
func (s *Shell) Logout(ctx context.Context) error {
	return s.guard.Logout(ctx)
}
