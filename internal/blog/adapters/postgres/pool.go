// Package postgres содержит реализации репозиториев сервиса blog поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое используют репозитории.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// querier выполняет запросы как на пуле, так и внутри транзакции.
type querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	pgForeignKeyViolation = "23503"

	errBeginTx  = "failed to begin transaction"
	errCommitTx = "failed to commit transaction"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE для поиска подстроки.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// inTx выполняет fn в транзакции: откат при ошибке, коммит при успехе.
func inTx(ctx context.Context, pool PgxPoolInterface, operation string, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return domainerrors.NewDatabase(operation, fmt.Errorf("%s: %w", errBeginTx, err))
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log(ctx).Warn(ctx, "failed to rollback transaction",
				zap.String("method", operation), zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domainerrors.NewDatabase(operation, fmt.Errorf("%s: %w", errCommitTx, err))
	}
	return nil
}
