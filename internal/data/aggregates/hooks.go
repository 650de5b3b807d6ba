package aggregates

import (
	"time"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/observability"
)

const statusSuccess = "success"

// WriteOutcome is reported once per aggregate write, including writes rejected
// before any store access (Duration is zero for those).
type WriteOutcome struct {
	Op       string
	Status   string
	Duration time.Duration
}

func (o WriteOutcome) Conflict() bool  { return o.Status == string(domainagg.CodeConflict) }
func (o WriteOutcome) Retryable() bool { return o.Status == string(domainagg.CodeRetryable) }

// Hooks receives aggregate write outcomes.
type Hooks interface {
	ObserveWrite(o WriteOutcome)
}

type noopHooks struct{}

func (noopHooks) ObserveWrite(WriteOutcome) {}

type metricsHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks feeds write outcomes into the process metrics. A nil
// metrics registry yields no-op hooks.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return metricsHooks{metrics: metrics}
}

func (h metricsHooks) ObserveWrite(o WriteOutcome) {
	h.metrics.ObserveAggregateOperation(o.Op, o.Status, o.Duration)
	switch {
	case o.Conflict():
		h.metrics.IncAggregateConflict(o.Op)
	case o.Retryable():
		h.metrics.IncAggregateRetry(o.Op)
	}
}
