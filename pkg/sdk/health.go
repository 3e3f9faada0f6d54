package newsdex

import (
	"context"

	healthuc "github.com/kailas-cloud/newsdex/internal/usecase/health"
)

// HealthStatus represents the engine health.
type HealthStatus struct {
	Status string            // "ok", "error"
	Driver string            // elasticsearch, redis, bleve
	Checks map[string]string // component → "ok"/"error"
}

// Health checks the engine.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Driver: report.Driver,
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
