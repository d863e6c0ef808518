package workout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/liftlog/internal/workout"
)

func historical(id int, exercises ...string) workout.Workout {
	w := workout.Workout{ID: id}
	for i, name := range exercises {
		w.Sessions = append(w.Sessions, workout.ExerciseSession{
			ID:           id*100 + i,
			WorkoutID:    id,
			ExerciseName: name,
		})
	}
	return w
}

func Test_Signature_SortsAndDeduplicates(t *testing.T) {
	got := workout.Signature([]string{"Squat", "Bench Press", "Squat", "Deadlift"})
	want := "Bench Press|Deadlift|Squat"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}

func Test_Signature_OrderInsensitive(t *testing.T) {
	a := workout.Signature([]string{"Squat", "Bench Press"})
	b := workout.Signature([]string{"Bench Press", "Squat"})
	if a != b {
		t.Errorf("signatures differ for the same exercise selection: %q vs %q", a, b)
	}
}

func Test_InferPatterns_SuppressesSingleOccurrences(t *testing.T) {
	workouts := []workout.Workout{
		historical(1, "Squat", "Bench Press"),
		historical(2, "Deadlift"),
		historical(3, "Bench Press", "Squat"),
	}

	patterns := workout.InferPatterns(workouts)
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1 (the deadlift-only workout occurred once)", len(patterns))
	}
	p := patterns[0]
	if p.OccurrenceCount != 2 {
		t.Errorf("occurrence count = %d, want 2", p.OccurrenceCount)
	}
	if diff := cmp.Diff([]int{1, 3}, p.WorkoutIDs); diff != "" {
		t.Errorf("workout ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Bench Press", "Squat"}, p.Exercises); diff != "" {
		t.Errorf("exercises mismatch (-want +got):\n%s", diff)
	}
}

func Test_InferPatterns_RanksByOccurrenceWithStableTies(t *testing.T) {
	workouts := []workout.Workout{
		historical(1, "Pull-up"),
		historical(2, "Squat"),
		historical(3, "Pull-up"),
		historical(4, "Squat"),
		historical(5, "Squat"),
		historical(6, "Plank"),
		historical(7, "Plank"),
	}

	patterns := workout.InferPatterns(workouts)
	if len(patterns) != 3 {
		t.Fatalf("got %d patterns, want 3", len(patterns))
	}
	if patterns[0].Signature != "Squat" {
		t.Errorf("top pattern = %q, want Squat with 3 occurrences", patterns[0].Signature)
	}
	// Pull-up and Plank both occur twice; first-seen order breaks the tie.
	if patterns[1].Signature != "Pull-up" || patterns[2].Signature != "Plank" {
		t.Errorf("tie order = %q, %q; want Pull-up then Plank", patterns[1].Signature, patterns[2].Signature)
	}
}

func Test_InferPatterns_IgnoresPlaceholdersAndEmptyWorkouts(t *testing.T) {
	workouts := []workout.Workout{
		{Placeholder: true},
		{ID: 1},
		{Placeholder: true},
	}

	if patterns := workout.InferPatterns(workouts); len(patterns) != 0 {
		t.Errorf("got %d patterns from placeholder-only history, want 0", len(patterns))
	}
}

func Test_MatchesFilter(t *testing.T) {
	tests := []struct {
		name      string
		tmplName  string
		exercises []string
		term      string
		want      bool
	}{
		{"empty term matches", "Leg Day", []string{"Squat"}, "", true},
		{"case-insensitive name match", "Leg Day", nil, "leg", true},
		{"case-insensitive exercise match", "", []string{"Bench Press"}, "BENCH", true},
		{"substring of exercise", "", []string{"Overhead Press"}, "head", true},
		{"no match", "Push Day", []string{"Bench Press"}, "squat", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.MatchesFilter(tt.tmplName, tt.exercises, tt.term)
			if got != tt.want {
				t.Errorf("MatchesFilter(%q, %v, %q) = %v, want %v", tt.tmplName, tt.exercises, tt.term, got, tt.want)
			}
		})
	}
}
