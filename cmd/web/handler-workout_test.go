package main

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/myrjola/liftlog/internal/e2etest"
	"github.com/myrjola/liftlog/internal/testhelpers"
	"github.com/myrjola/liftlog/internal/workout"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "LIFTLOG_SQLITE_URL":
		return ":memory:", true
	case "LIFTLOG_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}

func exerciseIDByName(t *testing.T, server *e2etest.Server, name string) int {
	t.Helper()
	var id int
	if err := server.DB().QueryRow("SELECT id FROM exercises WHERE name = ?", name).Scan(&id); err != nil {
		t.Fatalf("Failed to resolve exercise %q: %v", name, err)
	}
	return id
}

func Test_application_workoutLifecycle(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var created workout.Workout

	t.Run("start workout", func(t *testing.T) {
		start := time.Date(2026, 8, 10, 17, 0, 0, 0, time.UTC)
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts",
			map[string]any{"start_time": start}, &created)
		if err != nil {
			t.Fatalf("Failed to start workout: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}
		if created.ID == 0 {
			t.Fatal("created workout has no id")
		}
	})

	t.Run("second open workout on same day conflicts", func(t *testing.T) {
		var errResp struct {
			WorkoutID int `json:"workout_id"`
		}
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts",
			map[string]any{"start_time": time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC)}, &errResp)
		if err != nil {
			t.Fatalf("Failed to post workout: %v", err)
		}
		if status != http.StatusConflict {
			t.Fatalf("status = %d, want 409", status)
		}
		if errResp.WorkoutID != created.ID {
			t.Errorf("conflicting workout id = %d, want %d", errResp.WorkoutID, created.ID)
		}
	})

	var session workout.ExerciseSession

	t.Run("add session and sets", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost,
			"/api/workouts/"+itoa(created.ID)+"/sessions",
			map[string]any{"exercise_id": exerciseIDByName(t, server, "Squat"), "weight_unit": "kg"},
			&session)
		if err != nil {
			t.Fatalf("Failed to add session: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201", status)
		}

		for _, input := range []map[string]any{
			{"weight": 100.0, "reps": 5, "rpe": 8.0},
			{"weight": 100.0, "reps": 5, "rpe": 7.0},
		} {
			var set workout.Set
			status, err = client.DoJSON(ctx, http.MethodPost,
				"/api/sessions/"+itoa(session.ID)+"/sets", input, &set)
			if err != nil {
				t.Fatalf("Failed to log set: %v", err)
			}
			if status != http.StatusCreated {
				t.Fatalf("status = %d, want 201", status)
			}
		}
	})

	t.Run("invalid set is rejected", func(t *testing.T) {
		var errResp struct {
			Field string `json:"field"`
		}
		status, err := client.DoJSON(ctx, http.MethodPost,
			"/api/sessions/"+itoa(session.ID)+"/sets",
			map[string]any{"weight": 100.0, "reps": 0}, &errResp)
		if err != nil {
			t.Fatalf("Failed to post set: %v", err)
		}
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", status)
		}
		if errResp.Field != "reps" {
			t.Errorf("rejected field = %q, want reps", errResp.Field)
		}
	})

	t.Run("stats include the workout and placeholders", func(t *testing.T) {
		var workouts []workout.Workout
		status, err := client.DoJSON(ctx, http.MethodGet,
			"/api/stats?from=2026-08-09&to=2026-08-11", nil, &workouts)
		if err != nil {
			t.Fatalf("Failed to get stats: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(workouts) != 3 {
			t.Fatalf("got %d workouts, want 3", len(workouts))
		}
		if !workouts[0].Placeholder || !workouts[2].Placeholder {
			t.Error("flanking days are not placeholders")
		}
		w := workouts[1]
		if w.Stats.SetCount != 2 || w.Stats.Volume != 1000 {
			t.Errorf("stats = %+v, want 2 sets and volume 1000", w.Stats)
		}
		if w.Stats.AvgRPE == nil || *w.Stats.AvgRPE != 7.5 {
			t.Errorf("avg RPE = %v, want 7.5", w.Stats.AvgRPE)
		}
	})

	t.Run("close workout", func(t *testing.T) {
		var closed workout.Workout
		status, err := client.DoJSON(ctx, http.MethodPost,
			"/api/workouts/"+itoa(created.ID)+"/close", nil, &closed)
		if err != nil {
			t.Fatalf("Failed to close workout: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if closed.EndTime == nil {
			t.Error("closed workout has no end time")
		}
	})

	t.Run("unknown workout is 404", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodGet, "/api/workouts/99999", nil, nil)
		if err != nil {
			t.Fatalf("Failed to get workout: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})
}

func Test_application_replicate(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var source workout.Workout
	if _, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts",
		map[string]any{"start_time": time.Date(2026, 8, 3, 17, 0, 0, 0, time.UTC)}, &source); err != nil {
		t.Fatalf("Failed to start workout: %v", err)
	}
	var session workout.ExerciseSession
	if _, err := client.DoJSON(ctx, http.MethodPost,
		"/api/workouts/"+itoa(source.ID)+"/sessions",
		map[string]any{"exercise_id": exerciseIDByName(t, server, "Deadlift"), "weight_unit": "kg"},
		&session); err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}
	if _, err := client.DoJSON(ctx, http.MethodPost,
		"/api/sessions/"+itoa(session.ID)+"/sets",
		map[string]any{"weight": 140.0, "reps": 3}, nil); err != nil {
		t.Fatalf("Failed to log set: %v", err)
	}
	if _, err := client.DoJSON(ctx, http.MethodPost,
		"/api/workouts/"+itoa(source.ID)+"/close", nil, nil); err != nil {
		t.Fatalf("Failed to close workout: %v", err)
	}

	var resp struct {
		Created workout.CreatedIDs `json:"created"`
	}
	status, err := client.DoJSON(ctx, http.MethodPost, "/api/replicate", map[string]any{
		"source_workout_id": source.ID,
		"start_time":        time.Date(2026, 8, 10, 17, 0, 0, 0, time.UTC),
	}, &resp)
	if err != nil {
		t.Fatalf("Failed to replicate: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Created.WorkoutID == nil || len(resp.Created.SetIDs) != 1 {
		t.Fatalf("created = %+v, want a new workout with one set", resp.Created)
	}

	var replica workout.Workout
	if _, err = client.DoJSON(ctx, http.MethodGet,
		"/api/workouts/"+itoa(*resp.Created.WorkoutID), nil, &replica); err != nil {
		t.Fatalf("Failed to get replica: %v", err)
	}
	if replica.Stats.Volume != 140*3 {
		t.Errorf("replica volume = %f, want 420", replica.Stats.Volume)
	}
}

func Test_application_templates(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var tmpl workout.UserTemplate
	status, err := client.DoJSON(ctx, http.MethodPost, "/api/templates", map[string]any{
		"name": "Leg Day",
		"exercises": []map[string]any{
			{"exercise_id": exerciseIDByName(t, server, "Squat"), "set_count": 3},
		},
	}, &tmpl)
	if err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}

	var catalog workout.TemplateCatalog
	if status, err = client.DoJSON(ctx, http.MethodGet, "/api/templates?filter=leg", nil, &catalog); err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if status != http.StatusOK || len(catalog.Templates) != 1 {
		t.Fatalf("status %d with %d templates, want 200 and 1", status, len(catalog.Templates))
	}

	if status, err = client.DoJSON(ctx, http.MethodGet, "/api/templates?filter=bench", nil, &catalog); err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(catalog.Templates) != 0 {
		t.Errorf("filter bench matched %d templates, want 0", len(catalog.Templates))
	}

	if status, err = client.DoJSON(ctx, http.MethodDelete, "/api/templates/"+itoa(tmpl.ID), nil, nil); err != nil {
		t.Fatalf("Failed to delete template: %v", err)
	}
	if status != http.StatusNoContent {
		t.Errorf("status = %d, want 204", status)
	}
}

func Test_application_preferences(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var prefs struct {
		WeightUnit string `json:"weight_unit"`
	}
	if _, err := client.DoJSON(ctx, http.MethodGet, "/api/preferences", nil, &prefs); err != nil {
		t.Fatalf("Failed to get preferences: %v", err)
	}
	if prefs.WeightUnit != "kg" {
		t.Errorf("default weight unit = %q, want kg", prefs.WeightUnit)
	}

	status, err := client.DoJSON(ctx, http.MethodPost, "/api/preferences",
		map[string]any{"weight_unit": "lb"}, &prefs)
	if err != nil {
		t.Fatalf("Failed to set preferences: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	// The preference sticks to the session cookie.
	if _, err = client.DoJSON(ctx, http.MethodGet, "/api/preferences", nil, &prefs); err != nil {
		t.Fatalf("Failed to get preferences: %v", err)
	}
	if prefs.WeightUnit != "lb" {
		t.Errorf("weight unit = %q, want lb", prefs.WeightUnit)
	}
}

func Test_application_exercises(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var exercises []workout.Exercise
	if _, err := client.DoJSON(ctx, http.MethodGet, "/api/exercises", nil, &exercises); err != nil {
		t.Fatalf("Failed to list exercises: %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("exercise catalog is empty, want seeded fixtures")
	}

	var detail struct {
		workout.Exercise
		DescriptionHTML string `json:"description_html"`
	}
	if _, err := client.DoJSON(ctx, http.MethodGet, "/api/exercises/"+itoa(exercises[0].ID), nil, &detail); err != nil {
		t.Fatalf("Failed to get exercise: %v", err)
	}
	if detail.ID != exercises[0].ID {
		t.Errorf("detail id = %d, want %d", detail.ID, exercises[0].ID)
	}
}

// itoa keeps URL building terse in the tests.
func itoa(id int) string {
	return strconv.Itoa(id)
}
