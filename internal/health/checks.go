package health

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/storage"
)

// ConfigChecker validates the effective configuration.
type ConfigChecker struct {
	cfg *config.Config
}

// NewConfigChecker creates a checker for cfg.
func NewConfigChecker(cfg *config.Config) *ConfigChecker {
	return &ConfigChecker{cfg: cfg}
}

// Name returns "config".
func (c *ConfigChecker) Name() string { return "config" }

// Check runs config.Validate.
func (c *ConfigChecker) Check(ctx context.Context) *Result {
	if err := c.cfg.Validate(); err != nil {
		return Unhealthy(err.Error())
	}
	return Healthy("configuration is valid").
		WithDetail("api_url", c.cfg.API.BaseURL).
		WithDetail("auth_mode", c.cfg.Auth.Mode)
}

// ProbeKey is the storage key written and removed by StorageChecker.
const ProbeKey = "gbms_doctor_probe"

// StorageChecker writes, reads back and removes a probe value.
type StorageChecker struct {
	store storage.Store
	path  string
}

// NewStorageChecker creates a checker for store. path is only reported.
func NewStorageChecker(store storage.Store, path string) *StorageChecker {
	return &StorageChecker{store: store, path: path}
}

// Name returns "local-storage".
func (c *StorageChecker) Name() string { return "local-storage" }

// Check round trips ProbeKey.
func (c *StorageChecker) Check(ctx context.Context) *Result {
	want := strconv.FormatInt(time.Now().UnixNano(), 10)
	if !c.store.Set(ProbeKey, want) {
		return Unhealthy("local storage is not writable").WithDetail("path", c.path)
	}
	defer c.store.Remove(ProbeKey)

	var got string
	if !c.store.Get(ProbeKey, &got) || got != want {
		return Unhealthy("local storage did not return the written value").WithDetail("path", c.path)
	}
	return Healthy("local storage is readable and writable").
		WithDetail("path", c.path).
		WithDetail("keys", len(c.store.Keys()))
}

// HealthAPI is the part of the API client BackendChecker needs.
type HealthAPI interface {
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// BackendChecker calls the backend's /health endpoint.
type BackendChecker struct {
	client   HealthAPI
	url      string
	required bool
}

// NewBackendChecker creates a checker for client. When required is false an
// unreachable backend is only degraded, as in demo mode.
func NewBackendChecker(client HealthAPI, url string, required bool) *BackendChecker {
	return &BackendChecker{client: client, url: url, required: required}
}

// Name returns "backend".
func (c *BackendChecker) Name() string { return "backend" }

// Check calls /health.
func (c *BackendChecker) Check(ctx context.Context) *Result {
	start := time.Now()
	h, err := c.client.Health(ctx)
	latency := time.Since(start)

	if err != nil {
		msg := "backend health check failed: " + err.Error()
		if stderrors.Is(err, api.ErrTransport) {
			msg = "backend unreachable"
		}
		r := Unhealthy(msg)
		if !c.required {
			r = Degraded(msg)
		}
		r.Latency = latency
		return r.WithDetail("url", c.url)
	}

	r := Healthy("backend is " + h.Status)
	if h.Status != "healthy" {
		r = Degraded("backend reports " + h.Status)
	}
	r.Latency = latency
	return r.WithDetail("url", c.url).
		WithDetail("service", h.Service).
		WithDetail("version", h.Version)
}

// SessionState is the part of the auth manager SessionChecker needs.
type SessionState interface {
	State(ctx context.Context) auth.State
}

// SessionChecker reports whether a live session exists.
type SessionChecker struct {
	auth SessionState
}

// NewSessionChecker creates a checker for m.
func NewSessionChecker(m SessionState) *SessionChecker {
	return &SessionChecker{auth: m}
}

// Name returns "session".
func (c *SessionChecker) Name() string { return "session" }

// Check is degraded when nobody is logged in.
func (c *SessionChecker) Check(ctx context.Context) *Result {
	if c.auth.State(ctx) != auth.StateAuthenticated {
		return Degraded("not logged in")
	}
	return Healthy("logged in")
}
