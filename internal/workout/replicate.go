package workout

import "time"

// WriteOp is one abstract write in a plan. Operations carry placeholder
// references (plan-created workout, session index) that the executing
// repository resolves to generated ids inside a single transaction.
type WriteOp interface {
	writeOp()
}

// CreateWorkoutOp creates the workout the rest of the plan attaches to.
// A plan contains at most one.
type CreateWorkoutOp struct {
	Name      *string
	StartTime time.Time
}

// CreateSessionOp creates an exercise session. A zero WorkoutID refers to the
// workout created earlier in the same plan; a non-zero WorkoutID attaches the
// session to an existing workout (the append merge policy).
type CreateSessionOp struct {
	WorkoutID  int
	ExerciseID int
	WeightUnit WeightUnit
}

// CreateSetOp creates a set under the SessionIndex-th CreateSessionOp of the
// plan (zero-based, in plan order).
type CreateSetOp struct {
	SessionIndex    int
	Weight          *float64
	Reps            int
	RPE             *float64
	AddedResistance *float64
}

// CloseWorkoutOp stamps an end time onto an existing workout. It is emitted
// when the caller chose the "create new and close prior" conflict policy.
type CloseWorkoutOp struct {
	WorkoutID int
	EndTime   time.Time
}

func (CreateWorkoutOp) writeOp() {}
func (CreateSessionOp) writeOp() {}
func (CreateSetOp) writeOp()     {}
func (CloseWorkoutOp) writeOp()  {}

// WritePlan is an ordered list of abstract write operations. The replicator
// computes what to write; executing the plan is the datastore's concern and
// happens all-or-nothing.
type WritePlan struct {
	Ops []WriteOp
}

// Empty reports whether executing the plan would be a no-op.
func (p WritePlan) Empty() bool {
	return len(p.Ops) == 0
}

// CreatedIDs reports the rows a write plan created, in plan order.
type CreatedIDs struct {
	WorkoutID  *int  `json:"workout_id"`
	SessionIDs []int `json:"session_ids"`
	SetIDs     []int `json:"set_ids"`
}

// PlanCreateFromSource builds the plan for replaying a source workout's
// structure into a new workout started at startTime: one session per source
// session preserving the weight unit, one set per source set copying weight,
// reps, RPE, and added resistance. Ids and timestamps are fresh. A source
// without sessions yields an empty plan.
func PlanCreateFromSource(source Workout, startTime time.Time) WritePlan {
	if len(source.Sessions) == 0 {
		return WritePlan{}
	}

	ops := []WriteOp{CreateWorkoutOp{Name: source.Name, StartTime: startTime}}
	ops = append(ops, sessionOps(0, source.Sessions)...)
	return WritePlan{Ops: ops}
}

// PlanCreateFromTemplate builds the plan for starting a new workout from a
// user template: one session per template exercise and SetCount
// zero-initialized scaffold sets per session, which the user fills in while
// training. A template without exercises yields an empty plan.
func PlanCreateFromTemplate(template UserTemplate, startTime time.Time) WritePlan {
	if len(template.Exercises) == 0 {
		return WritePlan{}
	}

	name := template.Name
	ops := []WriteOp{CreateWorkoutOp{Name: &name, StartTime: startTime}}
	ops = append(ops, templateSessionOps(0, template.Exercises)...)
	return WritePlan{Ops: ops}
}

// PlanAppend builds the plan for merging a source workout's structure into an
// already-open workout. Sessions attach to targetWorkoutID and no workout
// operation is emitted.
func PlanAppend(targetWorkoutID int, source Workout) WritePlan {
	if len(source.Sessions) == 0 {
		return WritePlan{}
	}
	return WritePlan{Ops: sessionOps(targetWorkoutID, source.Sessions)}
}

// PlanAppendTemplate is the append variant of PlanCreateFromTemplate.
func PlanAppendTemplate(targetWorkoutID int, template UserTemplate) WritePlan {
	if len(template.Exercises) == 0 {
		return WritePlan{}
	}
	return WritePlan{Ops: templateSessionOps(targetWorkoutID, template.Exercises)}
}

// WithClosePrior prepends a close operation for the prior open workout to the
// plan. The prior workout's end time is the latest set timestamp among its
// sessions, falling back to its start time when it has no sets.
func WithClosePrior(plan WritePlan, prior Workout) WritePlan {
	if plan.Empty() {
		return plan
	}
	closeOp := CloseWorkoutOp{WorkoutID: prior.ID, EndTime: CloseTime(prior)}
	return WritePlan{Ops: append([]WriteOp{closeOp}, plan.Ops...)}
}

// CloseTime resolves the end time for closing a workout: the latest set
// timestamp among its sessions, or the workout's start time when no sets
// were logged.
func CloseTime(w Workout) time.Time {
	latest := w.StartTime
	for _, session := range w.Sessions {
		for _, set := range session.Sets {
			if set.CreatedAt.After(latest) {
				latest = set.CreatedAt
			}
		}
	}
	return latest
}

func sessionOps(targetWorkoutID int, sessions []ExerciseSession) []WriteOp {
	var ops []WriteOp
	for i, session := range sessions {
		ops = append(ops, CreateSessionOp{
			WorkoutID:  targetWorkoutID,
			ExerciseID: session.ExerciseID,
			WeightUnit: session.WeightUnit,
		})
		for _, set := range session.Sets {
			ops = append(ops, CreateSetOp{
				SessionIndex:    i,
				Weight:          copyFloat(set.Weight),
				Reps:            set.Reps,
				RPE:             copyFloat(set.RPE),
				AddedResistance: copyFloat(set.AddedResistance),
			})
		}
	}
	return ops
}

func templateSessionOps(targetWorkoutID int, exercises []TemplateExercise) []WriteOp {
	var ops []WriteOp
	for i, te := range exercises {
		ops = append(ops, CreateSessionOp{
			WorkoutID:  targetWorkoutID,
			ExerciseID: te.ExerciseID,
			WeightUnit: WeightUnitKg,
		})
		for range te.SetCount {
			zero := 0.0
			ops = append(ops, CreateSetOp{
				SessionIndex: i,
				Weight:       &zero,
				Reps:         0,
			})
		}
	}
	return ops
}

// copyFloat clones an optional float so that executing a plan never aliases
// the source workout's values.
func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
