package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/liftlog/internal/sqlite"
)

// sqliteTemplateRepository persists user-authored workout templates.
type sqliteTemplateRepository struct {
	baseRepository
}

func newSQLiteTemplateRepository(db *sqlite.Database, logger *slog.Logger) *sqliteTemplateRepository {
	return &sqliteTemplateRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// List returns all templates with their exercises in position order.
func (r *sqliteTemplateRepository) List(ctx context.Context) (_ []UserTemplate, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT t.id, t.name, te.exercise_id, e.name, te.set_count
		FROM templates t
		LEFT JOIN template_exercises te ON te.template_id = t.id
		LEFT JOIN exercises e ON e.id = te.exercise_id
		ORDER BY t.name, t.id, te.position`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var templates []UserTemplate
	for rows.Next() {
		var (
			id           int
			name         string
			exerciseID   sql.NullInt64
			exerciseName sql.NullString
			setCount     sql.NullInt64
		)
		if err = rows.Scan(&id, &name, &exerciseID, &exerciseName, &setCount); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}

		if len(templates) == 0 || templates[len(templates)-1].ID != id {
			templates = append(templates, UserTemplate{ID: id, Name: name})
		}
		if exerciseID.Valid {
			tmpl := &templates[len(templates)-1]
			tmpl.Exercises = append(tmpl.Exercises, TemplateExercise{
				ExerciseID:   int(exerciseID.Int64),
				ExerciseName: exerciseName.String,
				SetCount:     int(setCount.Int64),
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return templates, nil
}

// Get retrieves a single template, or ErrNotFound.
func (r *sqliteTemplateRepository) Get(ctx context.Context, id int) (_ UserTemplate, err error) {
	var tmpl UserTemplate
	if err = r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT id, name FROM templates WHERE id = ?`, id).Scan(&tmpl.ID, &tmpl.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserTemplate{}, ErrNotFound
		}
		return UserTemplate{}, fmt.Errorf("query template: %w", err)
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT te.exercise_id, e.name, te.set_count
		FROM template_exercises te
		JOIN exercises e ON e.id = te.exercise_id
		WHERE te.template_id = ?
		ORDER BY te.position`, id)
	if err != nil {
		return UserTemplate{}, fmt.Errorf("query template exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	for rows.Next() {
		var exercise TemplateExercise
		if err = rows.Scan(&exercise.ExerciseID, &exercise.ExerciseName, &exercise.SetCount); err != nil {
			return UserTemplate{}, fmt.Errorf("scan template exercise: %w", err)
		}
		tmpl.Exercises = append(tmpl.Exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return UserTemplate{}, fmt.Errorf("rows error: %w", err)
	}
	return tmpl, nil
}

// Create inserts a template and its exercise slots in one transaction and
// returns the stored template.
func (r *sqliteTemplateRepository) Create(
	ctx context.Context,
	name string,
	exercises []TemplateExercise,
) (_ UserTemplate, err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return UserTemplate{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
		}
	}()

	result, err := tx.ExecContext(ctx, `INSERT INTO templates (name) VALUES (?)`, name)
	if err != nil {
		return UserTemplate{}, fmt.Errorf("insert template: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return UserTemplate{}, fmt.Errorf("template insert id: %w", err)
	}

	for position, exercise := range exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO template_exercises (template_id, exercise_id, set_count, position)
			VALUES (?, ?, ?, ?)`,
			id, exercise.ExerciseID, exercise.SetCount, position); err != nil {
			return UserTemplate{}, fmt.Errorf("insert template exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return UserTemplate{}, fmt.Errorf("commit template: %w", err)
	}
	return r.Get(ctx, int(id))
}

// Delete removes a template and its exercise slots.
func (r *sqliteTemplateRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return requireAffected(result, "template")
}
