package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/liftlog/internal/sqlite"
)

// sqliteWorkoutRepository persists workouts, exercise sessions and sets.
type sqliteWorkoutRepository struct {
	baseRepository
}

func newSQLiteWorkoutRepository(db *sqlite.Database, logger *slog.Logger) *sqliteWorkoutRepository {
	return &sqliteWorkoutRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// setRowColumns is the projection shared by the range and single-workout queries.
// The column order must match scanSetRows.
const setRowColumns = `
       w.id, w.name, w.start_time, w.end_time,
       es.id, es.exercise_id, e.name, e.category_id, c.name, es.weight_unit, es.notes,
       s.id, s.weight, s.reps, s.rpe, s.added_resistance, s.created_at`

// ListRange returns one row per set for every workout in the inclusive date
// range, plus a placeholder row for each day that has no workout. The range
// is driven by a recursive day series so empty days still surface.
func (r *sqliteWorkoutRepository) ListRange(ctx context.Context, from, to time.Time) (_ []SetRow, err error) {
	query := `
		WITH RECURSIVE days(day) AS (
		    SELECT date(?)
		    UNION ALL
		    SELECT date(day, '+1 day') FROM days WHERE day < date(?)
		)
		SELECT d.day,` + setRowColumns + `
		FROM days d
		LEFT JOIN workouts w ON date(w.start_time) = d.day
		LEFT JOIN exercise_sessions es ON es.workout_id = w.id
		LEFT JOIN exercises e ON e.id = es.exercise_id
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN sets s ON s.session_id = es.id
		ORDER BY d.day, w.start_time, w.id, es.id, s.created_at, s.id`

	rows, err := r.db.ReadOnly.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("query workout range: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	return scanSetRows(rows)
}

// Get returns the set rows of a single workout, or ErrNotFound.
func (r *sqliteWorkoutRepository) Get(ctx context.Context, id int) (_ []SetRow, err error) {
	query := `
		SELECT date(w.start_time),` + setRowColumns + `
		FROM workouts w
		LEFT JOIN exercise_sessions es ON es.workout_id = w.id
		LEFT JOIN exercises e ON e.id = es.exercise_id
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN sets s ON s.session_id = es.id
		WHERE w.id = ?
		ORDER BY es.id, s.created_at, s.id`

	rows, err := r.db.ReadOnly.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query workout: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	setRows, err := scanSetRows(rows)
	if err != nil {
		return nil, err
	}
	if len(setRows) == 0 {
		return nil, ErrNotFound
	}
	return setRows, nil
}

// OpenForDay returns the ID of the workout that is still open on the given
// day, or ErrNotFound when every workout of that day has ended.
func (r *sqliteWorkoutRepository) OpenForDay(ctx context.Context, day time.Time) (int, error) {
	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM workouts
		WHERE end_time IS NULL AND date(start_time) = date(?)
		ORDER BY start_time DESC, id DESC
		LIMIT 1`, formatDate(day)).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("query open workout: %w", err)
	}
	return id, nil
}

// Start inserts a new workout and returns its ID.
func (r *sqliteWorkoutRepository) Start(ctx context.Context, name *string, startTime time.Time) (int, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workouts (name, start_time) VALUES (?, ?)`,
		name, formatTimestamp(startTime))
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("workout insert id: %w", err)
	}
	return int(id), nil
}

// Close stamps the workout's end time.
func (r *sqliteWorkoutRepository) Close(ctx context.Context, id int, endTime time.Time) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workouts SET end_time = ? WHERE id = ?`,
		formatTimestamp(endTime), id)
	if err != nil {
		return fmt.Errorf("close workout: %w", err)
	}
	return requireAffected(result, "workout")
}

// Delete removes a workout and, through cascading foreign keys, its sessions
// and sets.
func (r *sqliteWorkoutRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return requireAffected(result, "workout")
}

// AddSession appends an exercise session to an existing workout.
func (r *sqliteWorkoutRepository) AddSession(
	ctx context.Context,
	workoutID int,
	exerciseID int,
	weightUnit WeightUnit,
	notes string,
) (int, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercise_sessions (workout_id, exercise_id, weight_unit, notes)
		VALUES (?, ?, ?, ?)`,
		workoutID, exerciseID, string(weightUnit), notes)
	if err != nil {
		return 0, fmt.Errorf("insert exercise session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("exercise session insert id: %w", err)
	}
	return int(id), nil
}

// DeleteSession removes an exercise session and its sets.
func (r *sqliteWorkoutRepository) DeleteSession(ctx context.Context, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM exercise_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise session: %w", err)
	}
	return requireAffected(result, "exercise session")
}

// AddSet appends a set to an exercise session.
func (r *sqliteWorkoutRepository) AddSet(
	ctx context.Context,
	sessionID int,
	input SetInput,
	createdAt time.Time,
) (int, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO sets (session_id, weight, reps, rpe, added_resistance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, input.Weight, input.Reps, input.RPE, input.AddedResistance, formatTimestamp(createdAt))
	if err != nil {
		return 0, fmt.Errorf("insert set: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("set insert id: %w", err)
	}
	return int(id), nil
}

// UpdateSet replaces the recorded values of an existing set.
func (r *sqliteWorkoutRepository) UpdateSet(ctx context.Context, id int, input SetInput) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE sets SET weight = ?, reps = ?, rpe = ?, added_resistance = ?
		WHERE id = ?`,
		input.Weight, input.Reps, input.RPE, input.AddedResistance, id)
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return requireAffected(result, "set")
}

// DeleteSet removes a single set.
func (r *sqliteWorkoutRepository) DeleteSet(ctx context.Context, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return requireAffected(result, "set")
}

// ExecutePlan applies every operation of a write plan within a single
// transaction. Session-creating operations are resolved in order so that
// set operations can address sessions created earlier in the same plan.
func (r *sqliteWorkoutRepository) ExecutePlan(ctx context.Context, plan WritePlan) (_ CreatedIDs, err error) {
	var created CreatedIDs
	if plan.Empty() {
		return created, nil
	}

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return created, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
		}
	}()

	var planWorkoutID int
	var sessionIDs []int
	now := formatTimestamp(time.Now())

	for _, op := range plan.Ops {
		switch o := op.(type) {
		case CreateWorkoutOp:
			var result sql.Result
			result, err = tx.ExecContext(ctx, `
				INSERT INTO workouts (name, start_time) VALUES (?, ?)`,
				o.Name, formatTimestamp(o.StartTime))
			if err != nil {
				return created, fmt.Errorf("insert workout: %w", err)
			}
			var id int64
			if id, err = result.LastInsertId(); err != nil {
				return created, fmt.Errorf("workout insert id: %w", err)
			}
			planWorkoutID = int(id)
			created.WorkoutID = &planWorkoutID

		case CreateSessionOp:
			workoutID := o.WorkoutID
			if workoutID == 0 {
				workoutID = planWorkoutID
			}
			var result sql.Result
			result, err = tx.ExecContext(ctx, `
				INSERT INTO exercise_sessions (workout_id, exercise_id, weight_unit, notes)
				VALUES (?, ?, ?, '')`,
				workoutID, o.ExerciseID, string(o.WeightUnit))
			if err != nil {
				return created, fmt.Errorf("insert exercise session: %w", err)
			}
			var id int64
			if id, err = result.LastInsertId(); err != nil {
				return created, fmt.Errorf("exercise session insert id: %w", err)
			}
			sessionIDs = append(sessionIDs, int(id))
			created.SessionIDs = append(created.SessionIDs, int(id))

		case CreateSetOp:
			if o.SessionIndex < 0 || o.SessionIndex >= len(sessionIDs) {
				return created, fmt.Errorf("set references session %d of %d in plan", o.SessionIndex, len(sessionIDs))
			}
			var result sql.Result
			result, err = tx.ExecContext(ctx, `
				INSERT INTO sets (session_id, weight, reps, rpe, added_resistance, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				sessionIDs[o.SessionIndex], o.Weight, o.Reps, o.RPE, o.AddedResistance, now)
			if err != nil {
				return created, fmt.Errorf("insert set: %w", err)
			}
			var id int64
			if id, err = result.LastInsertId(); err != nil {
				return created, fmt.Errorf("set insert id: %w", err)
			}
			created.SetIDs = append(created.SetIDs, int(id))

		case CloseWorkoutOp:
			if _, err = tx.ExecContext(ctx, `
				UPDATE workouts SET end_time = ? WHERE id = ? AND end_time IS NULL`,
				formatTimestamp(o.EndTime), o.WorkoutID); err != nil {
				return created, fmt.Errorf("close workout: %w", err)
			}

		default:
			return created, fmt.Errorf("unsupported plan operation %T", op)
		}
	}

	if err = tx.Commit(); err != nil {
		return created, fmt.Errorf("commit plan: %w", err)
	}
	return created, nil
}

// requireAffected converts a zero-row write into ErrNotFound.
func requireAffected(result sql.Result, entity string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}

// scanSetRows reads the flat set-row projection. The first column is the
// day, followed by setRowColumns.
func scanSetRows(rows *sql.Rows) ([]SetRow, error) {
	var setRows []SetRow
	for rows.Next() {
		var (
			dayStr          string
			workoutID       sql.NullInt64
			workoutName     sql.NullString
			startTimeStr    sql.NullString
			endTimeStr      sql.NullString
			sessionID       sql.NullInt64
			exerciseID      sql.NullInt64
			exerciseName    sql.NullString
			categoryID      sql.NullInt64
			categoryName    sql.NullString
			weightUnit      sql.NullString
			notes           sql.NullString
			setID           sql.NullInt64
			weight          sql.NullFloat64
			reps            sql.NullInt64
			rpe             sql.NullFloat64
			addedResistance sql.NullFloat64
			createdAtStr    sql.NullString
		)

		if err := rows.Scan(
			&dayStr,
			&workoutID, &workoutName, &startTimeStr, &endTimeStr,
			&sessionID, &exerciseID, &exerciseName, &categoryID, &categoryName, &weightUnit, &notes,
			&setID, &weight, &reps, &rpe, &addedResistance, &createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scan set row: %w", err)
		}

		row, err := parseSetRow(
			dayStr,
			workoutID, workoutName, startTimeStr, endTimeStr,
			sessionID, exerciseID, exerciseName, categoryID, categoryName, weightUnit, notes,
			setID, weight, reps, rpe, addedResistance, createdAtStr,
		)
		if err != nil {
			return nil, err
		}
		setRows = append(setRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return setRows, nil
}

//nolint:gocognit // straight-line conversion of one database row.
func parseSetRow(
	dayStr string,
	workoutID sql.NullInt64,
	workoutName sql.NullString,
	startTimeStr sql.NullString,
	endTimeStr sql.NullString,
	sessionID sql.NullInt64,
	exerciseID sql.NullInt64,
	exerciseName sql.NullString,
	categoryID sql.NullInt64,
	categoryName sql.NullString,
	weightUnit sql.NullString,
	notes sql.NullString,
	setID sql.NullInt64,
	weight sql.NullFloat64,
	reps sql.NullInt64,
	rpe sql.NullFloat64,
	addedResistance sql.NullFloat64,
	createdAtStr sql.NullString,
) (SetRow, error) {
	day, err := time.Parse(dateFormat, dayStr)
	if err != nil {
		return SetRow{}, fmt.Errorf("parse day: %w", err)
	}

	row := SetRow{Date: day}

	if workoutID.Valid {
		id := int(workoutID.Int64)
		row.WorkoutID = &id
		if workoutName.Valid {
			name := workoutName.String
			row.WorkoutName = &name
		}
		startTime, err := parseTimestamp(startTimeStr)
		if err != nil {
			return SetRow{}, fmt.Errorf("workout start time: %w", err)
		}
		if startTime != nil {
			row.WorkoutStart = *startTime
		}
		if row.WorkoutEnd, err = parseTimestamp(endTimeStr); err != nil {
			return SetRow{}, fmt.Errorf("workout end time: %w", err)
		}
	}

	if sessionID.Valid {
		id := int(sessionID.Int64)
		row.SessionID = &id
		row.ExerciseID = int(exerciseID.Int64)
		row.ExerciseName = exerciseName.String
		row.CategoryID = int(categoryID.Int64)
		row.CategoryName = categoryName.String
		row.WeightUnit = WeightUnit(weightUnit.String)
		if notes.Valid && notes.String != "" {
			n := notes.String
			row.Notes = &n
		}
	}

	if setID.Valid {
		id := int(setID.Int64)
		row.SetID = &id
		if weight.Valid {
			w := weight.Float64
			row.Weight = &w
		}
		row.Reps = int(reps.Int64)
		if rpe.Valid {
			v := rpe.Float64
			row.RPE = &v
		}
		if addedResistance.Valid {
			v := addedResistance.Float64
			row.AddedResistance = &v
		}
		createdAt, err := parseTimestamp(createdAtStr)
		if err != nil {
			return SetRow{}, fmt.Errorf("set created at: %w", err)
		}
		if createdAt != nil {
			row.CreatedAt = *createdAt
		}
	}

	return row, nil
}
