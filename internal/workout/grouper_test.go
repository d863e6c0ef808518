package workout_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/workout"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// setRow builds a full row for a logged set. The helpers keep the fixtures
// readable; identity fields vary per test.
func setRow(date string, workoutID, sessionID, setID int, exercise, category string, weight float64, reps int) workout.SetRow {
	return workout.SetRow{
		Date:         day(date),
		WorkoutID:    ptr.Ref(workoutID),
		WorkoutStart: day(date).Add(17 * time.Hour),
		SessionID:    ptr.Ref(sessionID),
		ExerciseID:   sessionID,
		ExerciseName: exercise,
		CategoryID:   len(category),
		CategoryName: category,
		WeightUnit:   workout.WeightUnitKg,
		SetID:        ptr.Ref(setID),
		Weight:       ptr.Ref(weight),
		Reps:         reps,
		CreatedAt:    day(date).Add(17*time.Hour + time.Duration(setID)*time.Minute),
	}
}

func Test_Group_BuildsHierarchyInFirstSeenOrder(t *testing.T) {
	rows := []workout.SetRow{
		setRow("2026-08-01", 1, 10, 100, "Squat", "Legs", 100, 5),
		setRow("2026-08-01", 1, 10, 101, "Squat", "Legs", 100, 5),
		setRow("2026-08-01", 1, 11, 102, "Bench Press", "Push", 80, 8),
		setRow("2026-08-02", 2, 12, 103, "Deadlift", "Legs", 140, 3),
	}

	workouts := workout.Group(rows)

	if len(workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(workouts))
	}

	first := workouts[0]
	if first.ID != 1 || first.Placeholder {
		t.Errorf("first workout = id %d placeholder %v, want id 1 and not placeholder", first.ID, first.Placeholder)
	}
	sessionNames := make([]string, len(first.Sessions))
	for i, s := range first.Sessions {
		sessionNames[i] = s.ExerciseName
	}
	if diff := cmp.Diff([]string{"Squat", "Bench Press"}, sessionNames); diff != "" {
		t.Errorf("session order mismatch (-want +got):\n%s", diff)
	}
	categoryNames := make([]string, len(first.Categories))
	for i, c := range first.Categories {
		categoryNames[i] = c.Name
	}
	if diff := cmp.Diff([]string{"Legs", "Push"}, categoryNames); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}
}

func Test_Group_EverySetAppearsExactlyOnce(t *testing.T) {
	rows := []workout.SetRow{
		setRow("2026-08-01", 1, 10, 100, "Squat", "Legs", 100, 5),
		setRow("2026-08-01", 1, 11, 101, "Bench Press", "Push", 80, 8),
		setRow("2026-08-01", 1, 12, 102, "Plank", "Core", 0, 1),
	}

	workouts := workout.Group(rows)
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	w := workouts[0]

	seen := map[int]int{}
	for _, session := range w.Sessions {
		for _, set := range session.Sets {
			seen[set.ID]++
		}
	}
	for _, row := range rows {
		if seen[*row.SetID] != 1 {
			t.Errorf("set %d appears %d times in sessions, want exactly once", *row.SetID, seen[*row.SetID])
		}
	}

	categorySets := 0
	for _, category := range w.Categories {
		categorySets += len(category.Sets)
	}
	if categorySets != len(rows) {
		t.Errorf("category sets = %d, want %d", categorySets, len(rows))
	}
	if w.Stats.SetCount != len(rows) {
		t.Errorf("workout set count = %d, want %d", w.Stats.SetCount, len(rows))
	}
}

func Test_Group_StatsAggregatePerLevel(t *testing.T) {
	rows := []workout.SetRow{
		setRow("2026-08-01", 1, 10, 100, "Squat", "Legs", 100, 5),
		setRow("2026-08-01", 1, 10, 101, "Squat", "Legs", 110, 3),
		setRow("2026-08-01", 1, 11, 102, "Bench Press", "Push", 80, 8),
	}

	w := workout.Group(rows)[0]

	if got, want := w.Stats.Volume, 100.0*5+110*3+80*8; got != want {
		t.Errorf("workout volume = %f, want %f", got, want)
	}
	if got, want := w.Sessions[0].Stats.Volume, 100.0*5+110*3; got != want {
		t.Errorf("squat session volume = %f, want %f", got, want)
	}
	if got, want := w.Categories[0].Stats.SetCount, 2; got != want {
		t.Errorf("legs set count = %d, want %d", got, want)
	}
	if got, want := w.Categories[1].Stats.Volume, 80.0*8; got != want {
		t.Errorf("push volume = %f, want %f", got, want)
	}
}

func Test_Group_PlaceholderDaysSurviveGrouping(t *testing.T) {
	rows := []workout.SetRow{
		setRow("2026-08-01", 1, 10, 100, "Squat", "Legs", 100, 5),
		{Date: day("2026-08-02")},
		setRow("2026-08-03", 2, 11, 101, "Deadlift", "Legs", 140, 3),
	}

	workouts := workout.Group(rows)
	if len(workouts) != 3 {
		t.Fatalf("got %d workouts, want 3 including the placeholder", len(workouts))
	}

	placeholder := workouts[1]
	if !placeholder.Placeholder {
		t.Fatal("middle entry is not a placeholder")
	}
	if !placeholder.Date.Equal(day("2026-08-02")) {
		t.Errorf("placeholder date = %v, want 2026-08-02", placeholder.Date)
	}
	if len(placeholder.Sessions) != 0 || len(placeholder.Categories) != 0 {
		t.Error("placeholder has children, want none")
	}
	if placeholder.Stats.SetCount != 0 || placeholder.Stats.Volume != 0 || placeholder.Stats.AvgRPE != nil {
		t.Errorf("placeholder stats = %+v, want zero", placeholder.Stats)
	}
}

func Test_Group_WorkoutWithoutSetsKeepsEmptySessions(t *testing.T) {
	// A session row without a set row: scaffolding exists but nothing logged.
	row := setRow("2026-08-01", 1, 10, 0, "Squat", "Legs", 0, 0)
	row.SetID = nil
	row.Weight = nil

	workouts := workout.Group([]workout.SetRow{row})
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	w := workouts[0]
	if len(w.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(w.Sessions))
	}
	if len(w.Sessions[0].Sets) != 0 {
		t.Errorf("session has %d sets, want 0", len(w.Sessions[0].Sets))
	}
	if w.Stats.SetCount != 0 {
		t.Errorf("workout set count = %d, want 0", w.Stats.SetCount)
	}
}
