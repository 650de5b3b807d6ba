package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// DefaultOpTimeout bounds a single aggregate write when BaseDeps.OpTimeout is unset.
const DefaultOpTimeout = 5 * time.Second

type BaseDeps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Runner    TxRunner
	Hooks     Hooks
	OpTimeout time.Duration
	Now       func() time.Time
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.OpTimeout <= 0 {
		d.OpTimeout = DefaultOpTimeout
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// executeWrite runs fn in one transaction under the operation timeout, maps the
// failure into an aggregate error code and reports it to the hooks.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, deps.OpTimeout)
	defer cancel()

	mapped := MapError(op, deps.Runner.InTx(ctx, fn))
	outcome := WriteOutcome{Op: op, Status: aggregateErrorStatus(mapped), Duration: time.Since(start)}
	if mapped != nil && deps.Log != nil && !outcome.Conflict() && outcome.Status != string(domainagg.CodeNotFound) {
		deps.Log.Warn("aggregate write failed", "op", op, "status", outcome.Status, "error", mapped)
	}
	deps.Hooks.ObserveWrite(outcome)
	return mapped
}

// rejectWrite reports an input failure detected before any store access.
func rejectWrite(deps BaseDeps, op string, err error) error {
	deps = deps.withDefaults()
	mapped := MapError(op, err)
	deps.Hooks.ObserveWrite(WriteOutcome{Op: op, Status: aggregateErrorStatus(mapped)})
	return mapped
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return statusSuccess
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
