// Package health aggregates component liveness checks for the health
// endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
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
	Checks map[string]CheckResult
}

// Pinger checks store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckFunc probes one component.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Service coordinates health checks.
type Service struct {
	checks []namedCheck
}

// New creates a Service with the store ping as its built-in check.
func New(db Pinger) *Service {
	s := &Service{}
	s.checks = append(s.checks, namedCheck{name: "database", fn: db.Ping})
	return s
}

// WithCheck registers an additional named component check.
func (s *Service) WithCheck(name string, fn CheckFunc) *Service {
	s.checks = append(s.checks, namedCheck{name: name, fn: fn})
	return s
}

// Check runs every registered check. Any failure degrades the aggregate
// status.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, c := range s.checks {
		if err := c.fn(ctx); err != nil {
			checks[c.name] = CheckError
			status = Degraded
		} else {
			checks[c.name] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
