package main

import (
	"net/http"
	"time"

	"github.com/myrjola/liftlog/internal/workout"
)

type startWorkoutRequest struct {
	Name      *string    `json:"name"`
	StartTime *time.Time `json:"start_time"`
}

// workoutStartPOST opens a new workout. At most one workout per day may be
// open; a conflict responds with 409 and the open workout's id.
func (app *application) workoutStartPOST(w http.ResponseWriter, r *http.Request) {
	var req startWorkoutRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	created, err := app.workoutService.StartWorkout(r.Context(), req.Name, startTime)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

// workoutGET returns one grouped workout.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	grouped, err := app.workoutService.GetWorkout(r.Context(), id)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, grouped)
}

// workoutClosePOST stamps the workout's end time.
func (app *application) workoutClosePOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	closed, err := app.workoutService.CloseWorkout(r.Context(), id)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, closed)
}

// workoutDELETE removes a workout with its sessions and sets.
func (app *application) workoutDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.DeleteWorkout(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addSessionRequest struct {
	ExerciseID int                `json:"exercise_id"`
	WeightUnit workout.WeightUnit `json:"weight_unit"`
	Notes      string             `json:"notes"`
}

// sessionPOST appends an exercise session to a workout.
func (app *application) sessionPOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	var req addSessionRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	session, err := app.workoutService.AddSession(r.Context(), id, req.ExerciseID, req.WeightUnit, req.Notes)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, session)
}

// sessionDELETE removes an exercise session and its sets.
func (app *application) sessionDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.DeleteSession(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
