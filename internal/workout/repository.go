package workout

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/liftlog/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"
const dateFormat = time.DateOnly

// baseRepository holds the dependencies shared by all SQLite repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// repository bundles the SQLite repositories behind the service.
type repository struct {
	workouts  *sqliteWorkoutRepository
	templates *sqliteTemplateRepository
	exercises *sqliteExerciseRepository
	weighIns  *sqliteWeighInRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		workouts:  newSQLiteWorkoutRepository(db, logger),
		templates: newSQLiteTemplateRepository(db, logger),
		exercises: newSQLiteExerciseRepository(db, logger),
		weighIns:  newSQLiteWeighInRepository(db, logger),
	}
}

// formatDate normalizes to UTC so the day axis matches the stored
// timestamps, which are always written in UTC.
func formatDate(t time.Time) string {
	return t.UTC().Format(dateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// parseTimestamp parses a timestamp from a nullable database string.
func parseTimestamp(timestampStr sql.NullString) (*time.Time, error) {
	if !timestampStr.Valid {
		return nil, nil //nolint:nilnil // nil time is expected when the column is NULL.
	}
	parsedTime, err := time.Parse(timestampFormat, timestampStr.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp format: %w", err)
	}
	return &parsedTime, nil
}
