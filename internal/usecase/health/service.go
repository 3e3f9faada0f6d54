package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the engine answers.
	Healthy Status = "ok"
	// Unhealthy indicates the engine is unreachable; search cannot be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Driver string
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine EnginePinger
	driver string
}

// New creates a Service for the engine behind driver.
func New(engine EnginePinger, driver string) *Service {
	return &Service{engine: engine, driver: driver}
}

// Check pings the engine.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"engine": CheckOK}
	status := Healthy

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Driver: s.driver, Checks: checks}
}
