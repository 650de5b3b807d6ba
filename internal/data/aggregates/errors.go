package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
)

// Sentinels joined into the errors an aggregate body returns; MapError turns
// them into coded errors.
var (
	ErrValidation = errors.New("invalid enrollment input")
	ErrNotFound   = errors.New("referenced row missing")
	ErrInvariant  = errors.New("enrollment invariant broken")
	ErrConflict   = errors.New("enrollment conflict")
	ErrRetryable  = errors.New("transient store failure")
)

func tagged(sentinel error, msg string) error {
	return errors.Join(sentinel, errors.New(strings.TrimSpace(msg)))
}

func ValidationError(msg string) error { return tagged(ErrValidation, msg) }
func NotFoundError(msg string) error   { return tagged(ErrNotFound, msg) }
func InvariantError(msg string) error  { return tagged(ErrInvariant, msg) }
func ConflictError(msg string) error   { return tagged(ErrConflict, msg) }
func RetryableError(msg string) error  { return tagged(ErrRetryable, msg) }

var sentinelCodes = []struct {
	err  error
	code domainagg.ErrorCode
}{
	{ErrValidation, domainagg.CodeValidation},
	{ErrNotFound, domainagg.CodeNotFound},
	{ErrInvariant, domainagg.CodeInvariantViolation},
	{ErrConflict, domainagg.CodeConflict},
	{ErrRetryable, domainagg.CodeRetryable},
	{gorm.ErrDuplicatedKey, domainagg.CodeConflict},
	{gorm.ErrRecordNotFound, domainagg.CodeNotFound},
	{gorm.ErrForeignKeyViolated, domainagg.CodeNotFound},
	{context.Canceled, domainagg.CodeRetryable},
	{context.DeadlineExceeded, domainagg.CodeRetryable},
}

// SQLSTATE classes: unique_violation, foreign_key_violation, then
// serialization_failure, deadlock_detected, lock_not_available, query_canceled.
var pgCodes = map[string]domainagg.ErrorCode{
	"23505": domainagg.CodeConflict,
	"23503": domainagg.CodeNotFound,
	"40001": domainagg.CodeRetryable,
	"40P01": domainagg.CodeRetryable,
	"55P03": domainagg.CodeRetryable,
	"57014": domainagg.CodeRetryable,
}

// SQLite reports constraint failures only through the message text.
var messageCodes = []struct {
	needle string
	code   domainagg.ErrorCode
}{
	{"duplicate key", domainagg.CodeConflict},
	{"unique constraint", domainagg.CodeConflict},
	{"already exists", domainagg.CodeConflict},
	{"foreign key constraint", domainagg.CodeNotFound},
	{"deadlock", domainagg.CodeRetryable},
	{"serialization", domainagg.CodeRetryable},
	{"database is locked", domainagg.CodeRetryable},
	{"timeout", domainagg.CodeRetryable},
	{"temporar", domainagg.CodeRetryable},
}

// MapError classifies err under op. Coded errors pass through untouched; a
// foreign key violation means the user or course is gone and maps to not_found.
// Anything unrecognised is internal.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if domainagg.CodeOf(err) != "" {
		return err
	}
	return domainagg.Wrap(classify(err), op, err)
}

func classify(err error) domainagg.ErrorCode {
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := pgCodes[strings.TrimSpace(pgErr.Code)]; ok {
			return code
		}
	}
	msg := strings.ToLower(err.Error())
	for _, mc := range messageCodes {
		if strings.Contains(msg, mc.needle) {
			return mc.code
		}
	}
	return domainagg.CodeInternal
}
