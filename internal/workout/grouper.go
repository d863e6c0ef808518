package workout

// workoutBuilder accumulates one workout bucket during a grouping pass. The
// index maps let the fold find existing exercise and category buckets without
// rescanning the slices.
type workoutBuilder struct {
	workout       Workout
	sessionIndex  map[string]int
	categoryIndex map[string]int
}

// Group folds flat set rows into workouts with per-exercise and per-category
// groupings and running stats at every level.
//
// The pass is single and order-preserving: workouts appear in first-seen
// order, exercises and categories within a workout in first-seen order, and
// sets in the order folded. Rows are assumed to arrive chronologically from
// the datastore.
//
// A row with a nil WorkoutID represents a calendar day with no logged
// activity. It still produces a placeholder workout entry with zero stats and
// empty children so that date-range views stay contiguous.
func Group(rows []SetRow) []Workout {
	var builders []*workoutBuilder
	index := make(map[workoutKey]int)

	for _, row := range rows {
		key := keyForRow(row)
		pos, ok := index[key]
		if !ok {
			pos = len(builders)
			index[key] = pos
			builders = append(builders, newWorkoutBuilder(row))
		}
		b := builders[pos]

		// Placeholder days and workouts without logged sessions carry no
		// children to fold.
		if row.WorkoutID == nil || row.SessionID == nil {
			continue
		}

		b.foldSession(row)

		if row.SetID == nil {
			continue
		}

		set := rowSet(row)
		b.workout.Stats = b.workout.Stats.Fold(set)

		session := &b.workout.Sessions[b.sessionIndex[row.ExerciseName]]
		session.Sets = append(session.Sets, set)
		session.Stats = session.Stats.Fold(set)

		category := &b.workout.Categories[b.categoryIndex[row.CategoryName]]
		category.Sets = append(category.Sets, set)
		category.Stats = category.Stats.Fold(set)
	}

	workouts := make([]Workout, len(builders))
	for i, b := range builders {
		workouts[i] = b.workout
	}
	return workouts
}

// workoutKey identifies a workout bucket during the fold. Placeholder days
// have no workout id, so they are keyed by calendar day instead.
type workoutKey struct {
	id  int
	day string
}

func keyForRow(row SetRow) workoutKey {
	if row.WorkoutID == nil {
		return workoutKey{id: 0, day: row.Date.Format("2006-01-02")}
	}
	return workoutKey{id: *row.WorkoutID, day: ""}
}

func newWorkoutBuilder(row SetRow) *workoutBuilder {
	w := Workout{
		Date:        row.Date,
		Placeholder: row.WorkoutID == nil,
	}
	if row.WorkoutID != nil {
		w.ID = *row.WorkoutID
		w.Name = row.WorkoutName
		w.StartTime = row.WorkoutStart
		w.EndTime = row.WorkoutEnd
	}
	return &workoutBuilder{
		workout:       w,
		sessionIndex:  make(map[string]int),
		categoryIndex: make(map[string]int),
	}
}

// foldSession ensures the exercise and category buckets for the row exist.
// Session identity within the fold is keyed by exercise name, first seen
// wins.
func (b *workoutBuilder) foldSession(row SetRow) {
	if _, ok := b.sessionIndex[row.ExerciseName]; !ok {
		b.sessionIndex[row.ExerciseName] = len(b.workout.Sessions)
		b.workout.Sessions = append(b.workout.Sessions, ExerciseSession{
			ID:           *row.SessionID,
			WorkoutID:    *row.WorkoutID,
			ExerciseID:   row.ExerciseID,
			ExerciseName: row.ExerciseName,
			WeightUnit:   row.WeightUnit,
			Notes:        row.Notes,
			Sets:         []Set{},
		})
	}

	if _, ok := b.categoryIndex[row.CategoryName]; !ok {
		b.categoryIndex[row.CategoryName] = len(b.workout.Categories)
		b.workout.Categories = append(b.workout.Categories, CategoryGroup{
			ID:   row.CategoryID,
			Name: row.CategoryName,
			Sets: []Set{},
		})
	}
}

func rowSet(row SetRow) Set {
	return Set{
		ID:              *row.SetID,
		SessionID:       *row.SessionID,
		Weight:          row.Weight,
		Reps:            row.Reps,
		RPE:             row.RPE,
		AddedResistance: row.AddedResistance,
		CreatedAt:       row.CreatedAt,
	}
}
