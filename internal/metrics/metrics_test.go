package metrics

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/errors"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/projects", "/projects"},
		{"/projects/7", "/projects/:id"},
		{"/budgets/12/execution", "/budgets/:id/execution"},
		{"/documents/3/download?x=1", "/documents/:id/download"},
		{"/dashboard/recent-projects", "/dashboard/recent-projects"},
		{"", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.path))
		})
	}
}

func TestObserveRequest(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveRequest("GET", "/projects/1", 200, 30*time.Millisecond)
	m.ObserveRequest("GET", "/projects/2", 200, 40*time.Millisecond)
	m.ObserveRequest("GET", "/projects/3", 404, 10*time.Millisecond)
	m.ObserveRequest("POST", "/auth/login", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/projects/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/projects/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("POST", "/auth/login", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.APIDuration))
}

func TestObserveCommand(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveCommand("gbms projects list", time.Second, nil)
	m.ObserveCommand("gbms projects list", time.Second, errors.NewNotAuthenticatedError())
	m.ObserveCommand("gbms whoami", time.Second, stderrors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandExecutions.WithLabelValues("gbms projects list", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandExecutions.WithLabelValues("gbms projects list", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("AUTH-003")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("unknown")))
}

func TestObserveLogin(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveLogin("demo", true)
	m.ObserveLogin("demo", false)
	m.ObserveLogin("demo", false)
	m.SessionExpirations.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("demo", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionExpirations))
}

func TestWriteTextfile(t *testing.T) {
	reg, m := NewRegistry()
	m.ObserveRequest("GET", "/projects", 200, 20*time.Millisecond)

	path := filepath.Join(t.TempDir(), "textfile", "gbms.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gbms_api_requests_total{method="GET",route="/projects",status="200"} 1`)
	assert.True(t, strings.Contains(string(data), "# TYPE gbms_api_request_duration_seconds histogram"))
}

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg, _ := NewRegistry()
	assert.Panics(t, func() { NewMetrics(reg) })
}
