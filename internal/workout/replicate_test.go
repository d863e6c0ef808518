package workout_test

import (
	"testing"
	"time"

	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/workout"
)

func sourceWorkout() workout.Workout {
	return workout.Workout{
		ID:   7,
		Name: ptr.Ref("Push Day"),
		Sessions: []workout.ExerciseSession{
			{
				ID:         70,
				ExerciseID: 3,
				WeightUnit: workout.WeightUnitKg,
				Sets: []workout.Set{
					{ID: 700, Weight: ptr.Ref(80.0), Reps: 8, RPE: ptr.Ref(8.0)},
					{ID: 701, Weight: ptr.Ref(85.0), Reps: 5},
				},
			},
			{
				ID:         71,
				ExerciseID: 6,
				WeightUnit: workout.WeightUnitBodyweight,
				Sets: []workout.Set{
					{ID: 710, Reps: 10, AddedResistance: ptr.Ref(10.0)},
				},
			},
		},
	}
}

func Test_PlanCreateFromSource_CopiesStructure(t *testing.T) {
	start := time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC)
	plan := workout.PlanCreateFromSource(sourceWorkout(), start)

	if len(plan.Ops) != 6 {
		t.Fatalf("got %d ops, want 6 (1 workout + 2 sessions + 3 sets)", len(plan.Ops))
	}

	create, ok := plan.Ops[0].(workout.CreateWorkoutOp)
	if !ok {
		t.Fatalf("first op is %T, want CreateWorkoutOp", plan.Ops[0])
	}
	if create.Name == nil || *create.Name != "Push Day" {
		t.Errorf("workout name = %v, want Push Day", create.Name)
	}
	if !create.StartTime.Equal(start) {
		t.Errorf("start time = %v, want %v", create.StartTime, start)
	}

	session, ok := plan.Ops[1].(workout.CreateSessionOp)
	if !ok {
		t.Fatalf("second op is %T, want CreateSessionOp", plan.Ops[1])
	}
	if session.WorkoutID != 0 {
		t.Errorf("session workout id = %d, want 0 (plan-created workout)", session.WorkoutID)
	}
	if session.ExerciseID != 3 || session.WeightUnit != workout.WeightUnitKg {
		t.Errorf("session = %+v, want exercise 3 in kg", session)
	}

	set, ok := plan.Ops[2].(workout.CreateSetOp)
	if !ok {
		t.Fatalf("third op is %T, want CreateSetOp", plan.Ops[2])
	}
	if set.SessionIndex != 0 || *set.Weight != 80 || set.Reps != 8 || *set.RPE != 8 {
		t.Errorf("set = %+v, want first source set copied under session 0", set)
	}

	bwSet, ok := plan.Ops[5].(workout.CreateSetOp)
	if !ok {
		t.Fatalf("sixth op is %T, want CreateSetOp", plan.Ops[5])
	}
	if bwSet.SessionIndex != 1 || bwSet.Weight != nil || *bwSet.AddedResistance != 10 {
		t.Errorf("bodyweight set = %+v, want nil weight and added resistance 10 under session 1", bwSet)
	}
}

func Test_PlanCreateFromSource_DoesNotAliasSourceValues(t *testing.T) {
	source := sourceWorkout()
	plan := workout.PlanCreateFromSource(source, time.Now())

	set := plan.Ops[2].(workout.CreateSetOp)
	*set.Weight = 999

	if *source.Sessions[0].Sets[0].Weight != 80 {
		t.Error("mutating a planned set changed the source workout")
	}
}

func Test_PlanCreateFromSource_EmptySourceYieldsEmptyPlan(t *testing.T) {
	plan := workout.PlanCreateFromSource(workout.Workout{ID: 1}, time.Now())
	if !plan.Empty() {
		t.Errorf("got %d ops, want empty plan for a source without sessions", len(plan.Ops))
	}
}

func Test_PlanCreateFromTemplate_ScaffoldsZeroInitializedSets(t *testing.T) {
	template := workout.UserTemplate{
		ID:   1,
		Name: "Leg Day",
		Exercises: []workout.TemplateExercise{
			{ExerciseID: 1, SetCount: 3},
			{ExerciseID: 2, SetCount: 2},
		},
	}

	plan := workout.PlanCreateFromTemplate(template, time.Now())
	if len(plan.Ops) != 8 {
		t.Fatalf("got %d ops, want 8 (1 workout + 2 sessions + 5 scaffold sets)", len(plan.Ops))
	}

	create := plan.Ops[0].(workout.CreateWorkoutOp)
	if create.Name == nil || *create.Name != "Leg Day" {
		t.Errorf("workout name = %v, want template name", create.Name)
	}

	scaffolds := 0
	for _, op := range plan.Ops {
		set, ok := op.(workout.CreateSetOp)
		if !ok {
			continue
		}
		scaffolds++
		if set.Weight == nil || *set.Weight != 0 || set.Reps != 0 {
			t.Errorf("scaffold set = %+v, want zero weight and zero reps", set)
		}
	}
	if scaffolds != 5 {
		t.Errorf("got %d scaffold sets, want 5", scaffolds)
	}
}

func Test_PlanAppend_TargetsExistingWorkout(t *testing.T) {
	plan := workout.PlanAppend(42, sourceWorkout())

	if len(plan.Ops) != 5 {
		t.Fatalf("got %d ops, want 5 (no workout op in append mode)", len(plan.Ops))
	}
	session, ok := plan.Ops[0].(workout.CreateSessionOp)
	if !ok {
		t.Fatalf("first op is %T, want CreateSessionOp", plan.Ops[0])
	}
	if session.WorkoutID != 42 {
		t.Errorf("session workout id = %d, want 42", session.WorkoutID)
	}
}

func Test_WithClosePrior_PrependsCloseAtLatestSetTime(t *testing.T) {
	start := time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC)
	prior := workout.Workout{
		ID:        9,
		StartTime: start,
		Sessions: []workout.ExerciseSession{
			{Sets: []workout.Set{
				{CreatedAt: start.Add(10 * time.Minute)},
				{CreatedAt: start.Add(45 * time.Minute)},
				{CreatedAt: start.Add(30 * time.Minute)},
			}},
		},
	}

	plan := workout.WithClosePrior(workout.PlanCreateFromSource(sourceWorkout(), start.Add(time.Hour)), prior)

	closeOp, ok := plan.Ops[0].(workout.CloseWorkoutOp)
	if !ok {
		t.Fatalf("first op is %T, want CloseWorkoutOp", plan.Ops[0])
	}
	if closeOp.WorkoutID != 9 {
		t.Errorf("close workout id = %d, want 9", closeOp.WorkoutID)
	}
	if want := start.Add(45 * time.Minute); !closeOp.EndTime.Equal(want) {
		t.Errorf("close time = %v, want latest set time %v", closeOp.EndTime, want)
	}
}

func Test_WithClosePrior_FallsBackToStartTimeWithoutSets(t *testing.T) {
	start := time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC)
	prior := workout.Workout{ID: 9, StartTime: start}

	got := workout.CloseTime(prior)
	if !got.Equal(start) {
		t.Errorf("close time = %v, want start time %v", got, start)
	}
}

func Test_WithClosePrior_LeavesEmptyPlanEmpty(t *testing.T) {
	plan := workout.WithClosePrior(workout.WritePlan{}, workout.Workout{ID: 9})
	if !plan.Empty() {
		t.Error("close op added to an empty plan, want no-op")
	}
}
