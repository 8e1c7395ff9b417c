package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/storage"
)

type fakeChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (f *fakeChecker) Name() string { return f.name }

func (f *fakeChecker) Check(ctx context.Context) *Result {
	select {
	case <-time.After(f.delay):
		return f.result
	case <-ctx.Done():
		return Unhealthy("timed out")
	}
}

func TestManager_CheckKeepsOrder(t *testing.T) {
	m := NewManager()
	m.AddChecker(&fakeChecker{name: "slow", result: Healthy("ok"), delay: 20 * time.Millisecond})
	m.AddChecker(&fakeChecker{name: "fast", result: Degraded("meh")})
	m.AddChecker(&fakeChecker{name: "nil"})

	results := m.Check(context.Background())
	require.Len(t, results, 3)
	assert.Equal(t, "slow", results[0].Name)
	assert.Equal(t, "fast", results[1].Name)
	assert.Equal(t, "nil", results[2].Name)
	assert.Equal(t, StatusUnhealthy, results[2].Status)
	assert.True(t, results[0].Latency > 0)
}

func TestManager_Timeout(t *testing.T) {
	m := NewManager().WithTimeout(10 * time.Millisecond)
	m.AddChecker(&fakeChecker{name: "hang", result: Healthy("late"), delay: time.Second})

	results := m.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, results[0].Status)
	assert.Equal(t, "timed out", results[0].Message)
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, StatusHealthy, OverallStatus(nil))
	assert.Equal(t, StatusHealthy, OverallStatus([]*Result{Healthy("a")}))
	assert.Equal(t, StatusDegraded, OverallStatus([]*Result{Healthy("a"), Degraded("b")}))
	assert.Equal(t, StatusUnhealthy, OverallStatus([]*Result{Degraded("b"), Unhealthy("c"), Healthy("a")}))
}

func TestConfigChecker(t *testing.T) {
	cfg := config.Default(t.TempDir())
	assert.Equal(t, StatusHealthy, NewConfigChecker(cfg).Check(context.Background()).Status)

	cfg.API.BaseURL = "not a url"
	assert.Equal(t, StatusUnhealthy, NewConfigChecker(cfg).Check(context.Background()).Status)
}

func TestStorageChecker(t *testing.T) {
	store := storage.NewMemoryStore(log.Discard())
	require.True(t, store.Set("sidebar_collapsed", true))

	r := NewStorageChecker(store, "memory").Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, []string{"sidebar_collapsed"}, store.Keys(), "probe key is removed")
}

type fakeHealth struct {
	status *api.HealthStatus
	err    error
}

func (f fakeHealth) Health(context.Context) (*api.HealthStatus, error) { return f.status, f.err }

func TestBackendChecker(t *testing.T) {
	ctx := context.Background()
	transport := &api.TransportError{Method: "GET", URL: "http://x/api/health", Err: errors.New("refused")}

	tests := []struct {
		name     string
		api      fakeHealth
		required bool
		want     Status
		message  string
	}{
		{"healthy", fakeHealth{status: &api.HealthStatus{Status: "healthy", Service: "GBMS"}}, true, StatusHealthy, "backend is healthy"},
		{"backend degraded", fakeHealth{status: &api.HealthStatus{Status: "maintenance"}}, true, StatusDegraded, "backend reports maintenance"},
		{"unreachable required", fakeHealth{err: transport}, true, StatusUnhealthy, "backend unreachable"},
		{"unreachable optional", fakeHealth{err: transport}, false, StatusDegraded, "backend unreachable"},
		{"server error", fakeHealth{err: &api.Error{StatusCode: 500, Message: "down"}}, true, StatusUnhealthy, "backend health check failed: down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewBackendChecker(tt.api, "http://x/api", tt.required).Check(ctx)
			assert.Equal(t, tt.want, r.Status)
			assert.Equal(t, tt.message, r.Message)
			assert.Equal(t, "http://x/api", r.Details["url"])
		})
	}
}

type fakeState auth.State

func (f fakeState) State(context.Context) auth.State { return auth.State(f) }

func TestSessionChecker(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, StatusHealthy, NewSessionChecker(fakeState(auth.StateAuthenticated)).Check(ctx).Status)
	assert.Equal(t, StatusDegraded, NewSessionChecker(fakeState(auth.StateUnauthenticated)).Check(ctx).Status)
}
