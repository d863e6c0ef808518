package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/liftlog/internal/sqlite"
)

// sqliteWeighInRepository persists body-weight measurements.
type sqliteWeighInRepository struct {
	baseRepository
}

func newSQLiteWeighInRepository(db *sqlite.Database, logger *slog.Logger) *sqliteWeighInRepository {
	return &sqliteWeighInRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// List returns weigh-ins newest first.
func (r *sqliteWeighInRepository) List(ctx context.Context) (_ []WeighIn, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, weight, unit, measured_at
		FROM weigh_ins
		ORDER BY measured_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query weigh-ins: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var weighIns []WeighIn
	for rows.Next() {
		var (
			weighIn       WeighIn
			measuredAtStr string
		)
		if err = rows.Scan(&weighIn.ID, &weighIn.Weight, &weighIn.Unit, &measuredAtStr); err != nil {
			return nil, fmt.Errorf("scan weigh-in: %w", err)
		}
		if weighIn.MeasuredAt, err = time.Parse(timestampFormat, measuredAtStr); err != nil {
			return nil, fmt.Errorf("parse measured at: %w", err)
		}
		weighIns = append(weighIns, weighIn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return weighIns, nil
}

// Add records a weigh-in and returns its ID.
func (r *sqliteWeighInRepository) Add(ctx context.Context, weight float64, unit string, measuredAt time.Time) (int, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO weigh_ins (weight, unit, measured_at) VALUES (?, ?, ?)`,
		weight, unit, formatTimestamp(measuredAt))
	if err != nil {
		return 0, fmt.Errorf("insert weigh-in: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("weigh-in insert id: %w", err)
	}
	return int(id), nil
}

// Delete removes a weigh-in.
func (r *sqliteWeighInRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM weigh_ins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weigh-in: %w", err)
	}
	return requireAffected(result, "weigh-in")
}
