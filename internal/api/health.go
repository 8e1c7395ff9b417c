package api

import "context"

// HealthStatus is returned by /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Health asks the backend for its status. It needs no session.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.Get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
