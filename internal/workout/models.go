// Package workout implements the workout logging domain: grouping logged
// sets into workout/exercise/category hierarchies with running statistics,
// inferring reusable templates from recurring workouts, and planning the
// writes for replicating a past workout or template into a new one.
package workout

import (
	"fmt"
	"time"

	"github.com/myrjola/liftlog/internal/errors"
)

// ErrNotFound is returned when a workout, session, set, template, or
// exercise cannot be resolved by id.
var ErrNotFound = errors.NewSentinel("not found")

// ErrWorkoutOpen is returned when a day already has an open workout.
var ErrWorkoutOpen = errors.NewSentinel("workout already open")

// OpenWorkoutError carries the id of the conflicting open workout so
// callers can offer appending to it or closing it first.
type OpenWorkoutError struct {
	WorkoutID int
}

func (e *OpenWorkoutError) Error() string {
	return fmt.Sprintf("workout %d already open", e.WorkoutID)
}

func (e *OpenWorkoutError) Unwrap() error {
	return ErrWorkoutOpen
}

// WeightUnit is the unit a session's sets are logged in.
type WeightUnit string

const (
	WeightUnitKg         WeightUnit = "kg"
	WeightUnitLb         WeightUnit = "lb"
	WeightUnitBodyweight WeightUnit = "bw"
)

// Set is one logged repetition group for an exercise.
type Set struct {
	ID        int        `json:"id"`
	SessionID int        `json:"session_id"`
	// Weight is nil for bodyweight sets.
	Weight *float64 `json:"weight"`
	Reps   int      `json:"reps"`
	// RPE is the rate of perceived exertion on a 5-10 scale, nil when not recorded.
	RPE *float64 `json:"rpe"`
	// AddedResistance applies only to bodyweight sets.
	AddedResistance *float64  `json:"added_resistance"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExerciseSession is one exercise's full run of sets within one workout.
// Sets are kept in performance order.
type ExerciseSession struct {
	ID           int        `json:"id"`
	WorkoutID    int        `json:"workout_id"`
	ExerciseID   int        `json:"exercise_id"`
	ExerciseName string     `json:"exercise_name"`
	WeightUnit   WeightUnit `json:"weight_unit"`
	Notes        *string    `json:"notes"`
	Sets         []Set      `json:"sets"`
	Stats        Stat       `json:"stats"`
}

// CategoryGroup is the derived per-category view over a workout's sets. A
// set's category is its exercise's category.
type CategoryGroup struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Sets  []Set  `json:"sets"`
	Stats Stat   `json:"stats"`
}

// Workout is one training occasion. A placeholder workout stands in for a
// calendar day with no logged activity so that date-range views stay
// contiguous; it has no backing row, no sessions, and zero stats.
type Workout struct {
	ID          int               `json:"id"`
	Name        *string           `json:"name"`
	Date        time.Time         `json:"date"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     *time.Time        `json:"end_time"`
	Sessions    []ExerciseSession `json:"sessions"`
	Categories  []CategoryGroup   `json:"categories"`
	Stats       Stat              `json:"stats"`
	Placeholder bool              `json:"placeholder"`
}

// Open reports whether the workout is still ongoing.
func (w Workout) Open() bool {
	return !w.Placeholder && w.EndTime == nil
}

// SetRow is a flat denormalized row as produced by the datastore join across
// workouts, exercise sessions, exercises, categories, and sets. A row with a
// nil WorkoutID represents a calendar day with no workout. A row with a nil
// SetID carries workout or session identity but no logged set.
type SetRow struct {
	Date            time.Time
	WorkoutID       *int
	WorkoutName     *string
	WorkoutStart    time.Time
	WorkoutEnd      *time.Time
	SessionID       *int
	ExerciseID      int
	ExerciseName    string
	CategoryID      int
	CategoryName    string
	WeightUnit      WeightUnit
	Notes           *string
	SetID           *int
	Weight          *float64
	Reps            int
	RPE             *float64
	AddedResistance *float64
	CreatedAt       time.Time
}

// TemplateExercise is one exercise slot in a user-authored template.
type TemplateExercise struct {
	ExerciseID   int    `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	SetCount     int    `json:"set_count"`
}

// UserTemplate is a persisted, user-authored exercise selection independent
// of any workout instance.
type UserTemplate struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Exercises []TemplateExercise `json:"exercises"`
}

// TemplatePattern is a recurring exercise-name pattern inferred from
// historical workouts. It is derived per query and never stored.
type TemplatePattern struct {
	Signature       string   `json:"signature"`
	Exercises       []string `json:"exercises"`
	OccurrenceCount int      `json:"occurrence_count"`
	WorkoutIDs      []int    `json:"workout_ids"`
}

// Exercise is a catalog entry users pick when logging a session.
type Exercise struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	CategoryID          int    `json:"category_id"`
	CategoryName        string `json:"category_name"`
	DescriptionMarkdown string `json:"description_markdown"`
}

// WeighIn is one logged body-weight measurement.
type WeighIn struct {
	ID         int       `json:"id"`
	Weight     float64   `json:"weight"`
	Unit       string    `json:"unit"`
	MeasuredAt time.Time `json:"measured_at"`
}
