package testutil

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
)

// InjectedTxRunner is a test helper for aggregate integration tests.
// With DB nil the body runs without a transaction; with DB set it runs inside a real
// transaction and any injected failure after the body rolls the writes back.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

var errInjectedRollback = errors.New("injected rollback")

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	db := r.DB
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		r.count(&r.RollbackCalls)
		return failBeforeBody
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	if db == nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.count(&r.RollbackCalls)
			return err
		}
		if failCommit != nil {
			r.count(&r.RollbackCalls)
			return failCommit
		}
		r.count(&r.CommitCalls)
		return nil
	}

	var bodyErr error
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bodyErr = fn(dbctx.Context{Ctx: ctx, Tx: tx}); bodyErr != nil {
			return bodyErr
		}
		if failCommit != nil {
			return errInjectedRollback
		}
		return nil
	})
	switch {
	case bodyErr != nil:
		r.count(&r.RollbackCalls)
		return bodyErr
	case errors.Is(txErr, errInjectedRollback):
		r.count(&r.RollbackCalls)
		return failCommit
	case txErr != nil:
		r.count(&r.RollbackCalls)
		return txErr
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(field *int) {
	r.mu.Lock()
	*field++
	r.mu.Unlock()
}
