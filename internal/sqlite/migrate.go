package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// migrate applies the embedded schema definition inside a single transaction.
//
// The schema uses CREATE ... IF NOT EXISTS statements so that applying it to
// an existing database is a no-op for tables that already match. Destructive
// changes (dropped columns, changed constraints) are handled out of band.
func (db *Database) migrate(ctx context.Context) (err error) {
	start := time.Now()

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	if _, err = tx.ExecContext(ctx, schemaDefinition); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated schema",
		slog.Duration("duration", time.Since(start)))

	return nil
}
