package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/liftlog/internal/sqlite"
)

// sqliteExerciseRepository persists the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

func newSQLiteExerciseRepository(db *sqlite.Database, logger *slog.Logger) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

const exerciseColumns = `e.id, e.name, e.category_id, c.name, e.description_markdown`

// List returns the full exercise catalog sorted by name.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises e
		JOIN categories c ON c.id = e.category_id
		ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var exercise Exercise
		if err = rows.Scan(
			&exercise.ID, &exercise.Name, &exercise.CategoryID,
			&exercise.CategoryName, &exercise.DescriptionMarkdown,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// Get retrieves a single exercise, or ErrNotFound.
func (r *sqliteExerciseRepository) Get(ctx context.Context, id int) (Exercise, error) {
	var exercise Exercise
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises e
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = ?`, id).Scan(
		&exercise.ID, &exercise.Name, &exercise.CategoryID,
		&exercise.CategoryName, &exercise.DescriptionMarkdown,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exercise{}, ErrNotFound
		}
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}
	return exercise, nil
}

// CategoryName resolves a category id, or ErrNotFound.
func (r *sqliteExerciseRepository) CategoryName(ctx context.Context, id int) (string, error) {
	var name string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT name FROM categories WHERE id = ?`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query category: %w", err)
	}
	return name, nil
}

// Create adds a new catalog exercise and returns the stored row.
func (r *sqliteExerciseRepository) Create(
	ctx context.Context,
	name string,
	categoryID int,
	descriptionMarkdown string,
) (Exercise, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name, category_id, description_markdown)
		VALUES (?, ?, ?)`,
		name, categoryID, descriptionMarkdown)
	if err != nil {
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, fmt.Errorf("exercise insert id: %w", err)
	}
	return r.Get(ctx, int(id))
}
