package main

import (
	"net/http"
	"time"

	"github.com/myrjola/liftlog/internal/workout"
)

type replicateRequest struct {
	SourceWorkoutID *int       `json:"source_workout_id"`
	TemplateID      *int       `json:"template_id"`
	StartTime       *time.Time `json:"start_time"`
	Append          bool       `json:"append"`
	ClosePrevious   bool       `json:"close_previous"`
}

type replicateResponse struct {
	Created workout.CreatedIDs `json:"created"`
}

// replicatePOST replays a past workout or a template into the target day,
// either appending to the day's open workout or creating a new one. The
// planned writes execute in a single transaction; an empty plan is a no-op.
func (app *application) replicatePOST(w http.ResponseWriter, r *http.Request) {
	var req replicateRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	created, err := app.workoutService.Replicate(r.Context(), workout.ReplicateRequest{
		SourceWorkoutID: req.SourceWorkoutID,
		TemplateID:      req.TemplateID,
		StartTime:       startTime,
		Append:          req.Append,
		ClosePrevious:   req.ClosePrevious,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, replicateResponse{Created: created})
}
