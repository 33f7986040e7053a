package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/thenoetrevino/flowboard/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// executor resolves the connection a repository call runs on: the
// transaction carried by ctx when there is one, otherwise the pool.
type executor struct {
	db *sql.DB
}

func (e executor) conn(ctx context.Context) (DBTX, error) {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx, nil
	}
	if e.db == nil {
		return nil, models.StoreUnavailable("database is not configured")
	}
	return e.db, nil
}

// withTx executes fn within a database transaction carried on the context.
// It rolls back on error and commits on success. Nested calls join the outer transaction.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	if db == nil {
		return models.StoreUnavailable("database is not configured")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// classify maps driver level connection failures to ErrStoreUnavailable.
// Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	switch {
	case errors.Is(err, models.ErrStoreUnavailable):
		return err
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return err
}

// isDuplicateKey reports whether err is a primary key or unique constraint
// violation, using the driver's error codes.
func isDuplicateKey(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// ER_DUP_ENTRY
		return mysqlErr.Number == 1062
	}
	return false
}

// setBuilder accumulates "col = ?" assignments for partial updates.
// Column names come from code, never from input.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) set(col string, v any) {
	b.cols = append(b.cols, col+" = ?")
	b.args = append(b.args, v)
}

func (b *setBuilder) empty() bool {
	return len(b.cols) == 0
}

func (b *setBuilder) clause() string {
	return strings.Join(b.cols, ", ")
}

// placeholders returns "?, ?, ?" for n arguments
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func intArgs(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// nullString stores empty strings as NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// rowsAffected returns models.NotFound(msg) when the statement touched no rows
func rowsAffected(result sql.Result, msg string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound(msg)
	}
	return nil
}
