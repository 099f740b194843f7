package helpboard

import (
	"context"
)

// HealthStatus is the aggregated state of the client's backends.
type HealthStatus struct {
	Status string            // "ok", "degraded" or "error"
	Checks map[string]string // "database", "seed" -> "ok" or "error"
}

// OK reports whether every backend answered.
func (h HealthStatus) OK() bool { return h.Status == "ok" }

// Health checks the database (when configured) and the seed file.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}
