package ports

import (
	"context"
	"time"
)

// HealthChecker reports the health of one dependency: the state backend,
// the event queue or the remote entity service.
type HealthChecker interface {
	// Name identifies the dependency in readiness reports.
	Name() string
	// HealthCheck returns nil when healthy. It must honour ctx's deadline.
	HealthCheck(ctx context.Context) error
}

// Criticality says whether a failing dependency takes the service out of
// rotation.
type Criticality int

const (
	// Critical dependencies hold workflow state or deliver events; without
	// them the service is not ready.
	Critical Criticality = iota
	// Degradable dependencies are reported but never block readiness.
	Degradable
)

func (c Criticality) String() string {
	if c == Degradable {
		return "degradable"
	}
	return "critical"
}

// CheckResult is the outcome of one HealthCheck.
type CheckResult struct {
	Err         error
	Criticality Criticality
	Latency     time.Duration
}

// HealthRegistry runs the registered checks for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker, criticality Criticality)
	// CheckAll runs every check and keys the results by checker name.
	CheckAll(ctx context.Context) map[string]CheckResult
}
