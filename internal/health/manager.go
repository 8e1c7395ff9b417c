package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each check.
const DefaultTimeout = 5 * time.Second

// Manager runs checks in parallel with a per check timeout.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
}

// NewManager creates a new health check manager with DefaultTimeout.
func NewManager() *Manager {
	return &Manager{timeout: DefaultTimeout}
}

// WithTimeout sets a custom timeout for health checks.
func (m *Manager) WithTimeout(timeout time.Duration) *Manager {
	if timeout > 0 {
		m.timeout = timeout
	}
	return m
}

// AddChecker registers a new health checker.
func (m *Manager) AddChecker(checker Checker) {
	m.checkers = append(m.checkers, checker)
}

// Check runs every checker and returns the results in registration order.
// A checker that returns nil is reported as unhealthy.
func (m *Manager) Check(ctx context.Context) []*Result {
	results := make([]*Result, len(m.checkers))

	var g errgroup.Group
	for i, c := range m.checkers {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			start := time.Now()
			r := c.Check(checkCtx)
			if r == nil {
				r = Unhealthy("check returned no result")
			}
			r.Name = c.Name()
			if r.Latency == 0 {
				r.Latency = time.Since(start)
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// OverallStatus is unhealthy if any result is, else degraded if any result
// is, else healthy.
func OverallStatus(results []*Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
