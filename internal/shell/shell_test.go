package shell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/storage"
)

const overviewBody = `{"success":true,"data":{
	"projects":{"total":32,"inProgress":20,"completed":10,"planning":2},
	"countries":18,"offices":6,
	"budget":{"total":124500000000,"planned":1000,"executed":500,"executionRate":50.5},
	"byType":{"consulting":12},"byDepartment":{"gb":20}
}}`

type fixture struct {
	shell    *Shell
	store    *storage.MemoryStore
	manager  *auth.Manager
	requests atomic.Int32

	mu    sync.Mutex
	pages []string
}

func (f *fixture) Navigate(page string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{store: storage.NewMemoryStore(log.Discard())}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	sess := session.New(f.store, session.Keys{})
	f.manager = auth.NewManager(sess, auth.NewDemoVerifier(),
		auth.WithNavigator(f),
		auth.WithLogger(log.Discard()),
	)
	client := api.New(api.Config{BaseURL: srv.URL + "/api"}, sess,
		api.WithLogger(log.Discard()),
		api.WithUnauthorizedHandler(f.manager.HandleUnauthorized),
	)
	f.shell = New(f.manager, client.Dashboard, f.store, WithLogger(log.Discard()))
	return f
}

func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/dashboard/overview":
		_, _ = w.Write([]byte(overviewBody))
	case "/api/dashboard/recent-projects":
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"code":"KRC-001","title":"메콩 관개"}]}`))
	case "/api/dashboard/upcoming-events":
		_, _ = w.Write([]byte(`{"success":true,"data":[{"type":"end","date":"2025-06-30","title":"사업 종료"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestInit_RequiresAuth(t *testing.T) {
	f := newFixture(t, dashboardHandler)

	assert.False(t, f.shell.Init(context.Background()))
	assert.Equal(t, []string{auth.EntryPage}, f.pages)
	assert.Equal(t, int32(0), f.requests.Load())
	assert.Nil(t, f.shell.Dashboard().Overview)
}

func TestInit_LoadsEverything(t *testing.T) {
	f := newFixture(t, dashboardHandler)
	ctx := context.Background()

	_, err := f.manager.Login(ctx, "user1", "user123")
	require.NoError(t, err)
	require.True(t, f.store.Set(storage.KeySidebarCollapsed, true))

	require.True(t, f.shell.Init(ctx))

	assert.Equal(t, HeaderInfo{Name: "홍길동", Department: "글로벌사업부", Avatar: "홍"}, f.shell.Header())
	assert.True(t, f.shell.SidebarCollapsed())

	data := f.shell.Dashboard()
	require.NotNil(t, data.Overview)
	assert.Equal(t, 20, data.Overview.Projects.InProgress)
	assert.Equal(t, Stats{
		TotalProjects:  "32",
		TotalBudget:    "1245.0억원",
		TotalCountries: "18",
		TotalOffices:   "6",
		ExecutionRate:  "50.5%",
	}, data.Stats)
	require.Len(t, data.Recent, 1)
	assert.Equal(t, "KRC-001", data.Recent[0].Code)
	require.Len(t, data.Upcoming, 1)
	assert.False(t, f.shell.Toasts().HasContainer())
	assert.Equal(t, int32(3), f.requests.Load())
}

func TestInit_PartialFailureBecomesToast(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/dashboard/upcoming-events" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"일정을 불러오지 못했습니다."}`))
			return
		}
		dashboardHandler(w, r)
	})
	ctx := context.Background()
	_, err := f.manager.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.True(t, f.shell.Init(ctx))

	data := f.shell.Dashboard()
	assert.NotNil(t, data.Overview)
	assert.Len(t, data.Recent, 1)
	assert.Empty(t, data.Upcoming)

	toasts := f.shell.Toasts().Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, format.KindError, toasts[0].Kind)
	assert.Equal(t, "일정을 불러오지 못했습니다.", toasts[0].Message)
}

func TestInit_ExpiredSessionDuringLoad(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()
	_, err := f.manager.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.False(t, f.shell.Init(ctx))

	assert.False(t, f.manager.IsAuthenticated(ctx))
	assert.Empty(t, f.shell.Header().Name)
	assert.Contains(t, f.pages, auth.EntryPage)
	assert.False(t, f.shell.Toasts().HasContainer())
}

func TestToggleSidebar_Persists(t *testing.T) {
	f := newFixture(t, dashboardHandler)

	assert.True(t, f.shell.ToggleSidebar())
	assert.True(t, storage.GetDefault(f.store, storage.KeySidebarCollapsed, false))

	assert.False(t, f.shell.ToggleSidebar())
	assert.False(t, storage.GetDefault(f.store, storage.KeySidebarCollapsed, true))
}

func TestActiveNav(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/dashboard.html", 0},
		{"/pages/projects.html", 1},
		{"/projects", 1},
		{"/gis.html?country=VN", 5},
		{"/login.html", -1},
		{"", -1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveNav(tt.path, DefaultNav))
		})
	}

	assert.Equal(t, -1, ActiveNav("/x", []NavItem{{Label: "empty"}}))
}

func TestLogout(t *testing.T) {
	f := newFixture(t, dashboardHandler)
	ctx := context.Background()
	_, err := f.manager.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, f.shell.Logout(ctx))
	assert.Equal(t, []string{auth.EntryPage}, f.pages)
	assert.Empty(t, f.store.Keys())
}
