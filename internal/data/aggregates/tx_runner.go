package aggregates

import (
	"context"
	"database/sql"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// TxRunner opens the transaction an aggregate write runs in.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewGormTxRunner runs writes in GORM transactions at the driver's default isolation.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return NewGormTxRunnerWithOptions(db, nil)
}

// NewGormTxRunnerWithOptions is NewGormTxRunner with explicit transaction options.
// Postgres deployments that want serializable enrollment writes pass
// &sql.TxOptions{Isolation: sql.LevelSerializable}; the resulting serialization
// failures surface as retryable.
func NewGormTxRunnerWithOptions(db *gorm.DB, opts *sql.TxOptions) TxRunner {
	return &gormTxRunner{db: db, opts: opts}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "enrollment.tx", "no database bound to transaction runner", nil)
	}
	body := func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	}
	if r.opts != nil {
		return r.db.WithContext(ctx).Transaction(body, r.opts)
	}
	return r.db.WithContext(ctx).Transaction(body)
}
