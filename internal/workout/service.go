package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/liftlog/internal/errors"
	"github.com/myrjola/liftlog/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// patternHistoryMonths bounds how far back template inference looks.
const patternHistoryMonths = 3

// Service handles the business logic for workout logging.
type Service struct {
	repo         *repository
	logger       *slog.Logger
	openaiAPIKey string
}

// NewService creates a new workout service.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	return &Service{
		repo:         newRepository(db, logger),
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
	}
}

// Stats returns the grouped workouts of an inclusive date range, including a
// placeholder workout for every day without logged activity.
func (s *Service) Stats(ctx context.Context, from, to time.Time) ([]Workout, error) {
	rows, err := s.repo.workouts.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list workout range: %w", err)
	}
	return Group(rows), nil
}

// GetWorkout returns one grouped workout by id.
func (s *Service) GetWorkout(ctx context.Context, id int) (Workout, error) {
	rows, err := s.repo.workouts.Get(ctx, id)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout: %w", err)
	}
	workouts := Group(rows)
	if len(workouts) == 0 {
		return Workout{}, ErrNotFound
	}
	return workouts[0], nil
}

// StartWorkout opens a new workout at startTime. A day holds at most one
// open workout; a conflict is reported as OpenWorkoutError carrying the
// already-open workout's id.
func (s *Service) StartWorkout(ctx context.Context, name *string, startTime time.Time) (Workout, error) {
	openID, err := s.repo.workouts.OpenForDay(ctx, startTime)
	if err == nil {
		return Workout{}, &OpenWorkoutError{WorkoutID: openID}
	}
	if !errors.Is(err, ErrNotFound) {
		return Workout{}, fmt.Errorf("check open workout: %w", err)
	}

	id, err := s.repo.workouts.Start(ctx, name, startTime)
	if err != nil {
		return Workout{}, fmt.Errorf("start workout: %w", err)
	}
	return s.GetWorkout(ctx, id)
}

// CloseWorkout stamps the workout's end time and returns the closed workout.
func (s *Service) CloseWorkout(ctx context.Context, id int) (Workout, error) {
	workout, err := s.GetWorkout(ctx, id)
	if err != nil {
		return Workout{}, err
	}
	if !workout.Open() {
		return Workout{}, &ValidationError{Field: "id", Reason: "workout is already closed"}
	}
	if err := s.repo.workouts.Close(ctx, id, time.Now()); err != nil {
		return Workout{}, fmt.Errorf("close workout: %w", err)
	}
	return s.GetWorkout(ctx, id)
}

// DeleteWorkout removes a workout with all its sessions and sets.
func (s *Service) DeleteWorkout(ctx context.Context, id int) error {
	if err := s.repo.workouts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// AddSession appends an exercise session to a workout.
func (s *Service) AddSession(
	ctx context.Context,
	workoutID int,
	exerciseID int,
	weightUnit WeightUnit,
	notes string,
) (ExerciseSession, error) {
	switch weightUnit {
	case WeightUnitKg, WeightUnitLb, WeightUnitBodyweight:
	default:
		return ExerciseSession{}, &ValidationError{Field: "weight_unit", Reason: "must be kg, lb, or bw"}
	}

	exercise, err := s.repo.exercises.Get(ctx, exerciseID)
	if err != nil {
		return ExerciseSession{}, fmt.Errorf("resolve exercise: %w", err)
	}
	if _, err = s.GetWorkout(ctx, workoutID); err != nil {
		return ExerciseSession{}, err
	}

	id, err := s.repo.workouts.AddSession(ctx, workoutID, exerciseID, weightUnit, notes)
	if err != nil {
		return ExerciseSession{}, fmt.Errorf("add session: %w", err)
	}

	session := ExerciseSession{
		ID:           id,
		WorkoutID:    workoutID,
		ExerciseID:   exerciseID,
		ExerciseName: exercise.Name,
		WeightUnit:   weightUnit,
	}
	if notes != "" {
		session.Notes = &notes
	}
	return session, nil
}

// DeleteSession removes an exercise session and its sets.
func (s *Service) DeleteSession(ctx context.Context, id int) error {
	if err := s.repo.workouts.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LogSet validates and appends a set to an exercise session.
func (s *Service) LogSet(ctx context.Context, sessionID int, input SetInput) (Set, error) {
	if err := input.Validate(); err != nil {
		return Set{}, err
	}

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	id, err := s.repo.workouts.AddSet(ctx, sessionID, input, createdAt)
	if err != nil {
		return Set{}, fmt.Errorf("log set: %w", err)
	}

	return Set{
		ID:              id,
		SessionID:       sessionID,
		Weight:          input.Weight,
		Reps:            input.Reps,
		RPE:             input.RPE,
		AddedResistance: input.AddedResistance,
		CreatedAt:       createdAt,
	}, nil
}

// UpdateSet validates and replaces the recorded values of a set.
func (s *Service) UpdateSet(ctx context.Context, id int, input SetInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := s.repo.workouts.UpdateSet(ctx, id, input); err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return nil
}

// DeleteSet removes a single set.
func (s *Service) DeleteSet(ctx context.Context, id int) error {
	if err := s.repo.workouts.DeleteSet(ctx, id); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// TemplateCatalog is everything the template picker shows: the user's saved
// templates and the patterns inferred from recent workout history.
type TemplateCatalog struct {
	Templates []UserTemplate    `json:"templates"`
	Patterns  []TemplatePattern `json:"patterns"`
}

// Templates returns the user's templates and the inferred recurring
// patterns, both narrowed by the case-insensitive filter term. Saved
// templates and history load concurrently.
func (s *Service) Templates(ctx context.Context, filter string) (TemplateCatalog, error) {
	var (
		templates []UserTemplate
		history   []Workout
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if templates, err = s.repo.templates.List(gctx); err != nil {
			return fmt.Errorf("list templates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		now := time.Now()
		rows, err := s.repo.workouts.ListRange(gctx, now.AddDate(0, -patternHistoryMonths, 0), now)
		if err != nil {
			return fmt.Errorf("list workout history: %w", err)
		}
		history = Group(rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return TemplateCatalog{}, err
	}

	catalog := TemplateCatalog{}
	for _, tmpl := range templates {
		if MatchesFilter(tmpl.Name, templateExerciseNames(tmpl), filter) {
			catalog.Templates = append(catalog.Templates, tmpl)
		}
	}
	for _, pattern := range InferPatterns(history) {
		if MatchesFilter("", pattern.Exercises, filter) {
			catalog.Patterns = append(catalog.Patterns, pattern)
		}
	}
	return catalog, nil
}

// CreateTemplate validates and stores a user template.
func (s *Service) CreateTemplate(ctx context.Context, input TemplateInput) (UserTemplate, error) {
	if err := input.Validate(); err != nil {
		return UserTemplate{}, err
	}

	exercises := make([]TemplateExercise, 0, len(input.Exercises))
	for _, e := range input.Exercises {
		if _, err := s.repo.exercises.Get(ctx, e.ExerciseID); err != nil {
			return UserTemplate{}, fmt.Errorf("resolve template exercise: %w", err)
		}
		exercises = append(exercises, TemplateExercise{ExerciseID: e.ExerciseID, SetCount: e.SetCount})
	}

	tmpl, err := s.repo.templates.Create(ctx, input.Name, exercises)
	if err != nil {
		return UserTemplate{}, fmt.Errorf("create template: %w", err)
	}
	return tmpl, nil
}

// DeleteTemplate removes a user template.
func (s *Service) DeleteTemplate(ctx context.Context, id int) error {
	if err := s.repo.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// ReplicateRequest selects what to replicate and how to merge it into the
// target day. Exactly one of SourceWorkoutID and TemplateID is set.
type ReplicateRequest struct {
	SourceWorkoutID *int
	TemplateID      *int
	StartTime       time.Time
	Append          bool
	ClosePrevious   bool
}

// Replicate builds and executes the write plan for replaying a past workout
// or a template into the target day. In append mode the sessions land in the
// day's open workout. In create mode a conflicting open workout either stops
// the request with OpenWorkoutError or, with ClosePrevious set, is closed
// within the same plan. An empty plan writes nothing.
func (s *Service) Replicate(ctx context.Context, req ReplicateRequest) (CreatedIDs, error) {
	plan, err := s.planReplication(ctx, req)
	if err != nil {
		return CreatedIDs{}, err
	}

	created, err := s.repo.workouts.ExecutePlan(ctx, plan)
	if err != nil {
		return CreatedIDs{}, fmt.Errorf("execute plan: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "replicated workout",
		slog.Int("operations", len(plan.Ops)),
		slog.Int("sessions", len(created.SessionIDs)),
		slog.Int("sets", len(created.SetIDs)))
	return created, nil
}

func (s *Service) planReplication(ctx context.Context, req ReplicateRequest) (WritePlan, error) {
	if (req.SourceWorkoutID == nil) == (req.TemplateID == nil) {
		return WritePlan{}, &ValidationError{
			Field:  "source",
			Reason: "exactly one of source_workout_id and template_id is required",
		}
	}

	openID, err := s.repo.workouts.OpenForDay(ctx, req.StartTime)
	hasOpen := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return WritePlan{}, fmt.Errorf("check open workout: %w", err)
	}

	if req.Append {
		if !hasOpen {
			return WritePlan{}, fmt.Errorf("no open workout to append to: %w", ErrNotFound)
		}
		if req.SourceWorkoutID != nil {
			source, err := s.GetWorkout(ctx, *req.SourceWorkoutID)
			if err != nil {
				return WritePlan{}, err
			}
			return PlanAppend(openID, source), nil
		}
		tmpl, err := s.repo.templates.Get(ctx, *req.TemplateID)
		if err != nil {
			return WritePlan{}, fmt.Errorf("get template: %w", err)
		}
		return PlanAppendTemplate(openID, tmpl), nil
	}

	var plan WritePlan
	if req.SourceWorkoutID != nil {
		source, err := s.GetWorkout(ctx, *req.SourceWorkoutID)
		if err != nil {
			return WritePlan{}, err
		}
		plan = PlanCreateFromSource(source, req.StartTime)
	} else {
		tmpl, err := s.repo.templates.Get(ctx, *req.TemplateID)
		if err != nil {
			return WritePlan{}, fmt.Errorf("get template: %w", err)
		}
		plan = PlanCreateFromTemplate(tmpl, req.StartTime)
	}

	if hasOpen && !plan.Empty() {
		if !req.ClosePrevious {
			return WritePlan{}, &OpenWorkoutError{WorkoutID: openID}
		}
		prior, err := s.GetWorkout(ctx, openID)
		if err != nil {
			return WritePlan{}, err
		}
		plan = WithClosePrior(plan, prior)
	}
	return plan, nil
}

// Exercises returns the exercise catalog.
func (s *Service) Exercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// GetExercise returns one catalog exercise.
func (s *Service) GetExercise(ctx context.Context, id int) (Exercise, error) {
	exercise, err := s.repo.exercises.Get(ctx, id)
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise: %w", err)
	}
	return exercise, nil
}

// CreateExercise adds a catalog exercise, generating a markdown description
// when an OpenAI API key is configured.
func (s *Service) CreateExercise(ctx context.Context, name string, categoryID int) (Exercise, error) {
	if err := validateExerciseName(name); err != nil {
		return Exercise{}, err
	}
	categoryName, err := s.repo.exercises.CategoryName(ctx, categoryID)
	if err != nil {
		return Exercise{}, fmt.Errorf("resolve category: %w", err)
	}

	description := s.describeExercise(ctx, name, categoryName)
	exercise, err := s.repo.exercises.Create(ctx, name, categoryID, description)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}
	return exercise, nil
}

// describeExercise never fails the creation: generation errors fall back to
// a minimal description that can be regenerated later.
func (s *Service) describeExercise(ctx context.Context, name, categoryName string) string {
	if s.openaiAPIKey == "" {
		return fallbackDescription(name)
	}
	description, err := newExerciseGenerator(s.openaiAPIKey).Describe(ctx, name, categoryName)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "exercise description generation failed",
			slog.String("exercise", name), errors.SlogError(err))
		return fallbackDescription(name)
	}
	return description
}

// WeighIns returns logged body-weight measurements, newest first.
func (s *Service) WeighIns(ctx context.Context) ([]WeighIn, error) {
	weighIns, err := s.repo.weighIns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weigh-ins: %w", err)
	}
	return weighIns, nil
}

// AddWeighIn records a body-weight measurement.
func (s *Service) AddWeighIn(ctx context.Context, weight float64, unit string, measuredAt time.Time) (WeighIn, error) {
	if weight <= 0 {
		return WeighIn{}, &ValidationError{Field: "weight", Reason: "must be positive"}
	}
	if unit != "kg" && unit != "lb" {
		return WeighIn{}, &ValidationError{Field: "unit", Reason: "must be kg or lb"}
	}

	id, err := s.repo.weighIns.Add(ctx, weight, unit, measuredAt)
	if err != nil {
		return WeighIn{}, fmt.Errorf("add weigh-in: %w", err)
	}
	return WeighIn{ID: id, Weight: weight, Unit: unit, MeasuredAt: measuredAt}, nil
}

// DeleteWeighIn removes a body-weight measurement.
func (s *Service) DeleteWeighIn(ctx context.Context, id int) error {
	if err := s.repo.weighIns.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete weigh-in: %w", err)
	}
	return nil
}

func templateExerciseNames(tmpl UserTemplate) []string {
	names := make([]string, 0, len(tmpl.Exercises))
	for _, e := range tmpl.Exercises {
		names = append(names, e.ExerciseName)
	}
	return names
}
