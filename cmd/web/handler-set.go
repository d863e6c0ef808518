package main

import (
	"net/http"

	"github.com/myrjola/liftlog/internal/workout"
)

// setPOST logs a set against an exercise session.
func (app *application) setPOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	var input workout.SetInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	logged, err := app.workoutService.LogSet(r.Context(), id, input)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, logged)
}

// setPUT replaces the recorded values of a set.
func (app *application) setPUT(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	var input workout.SetInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if err := app.workoutService.UpdateSet(r.Context(), id, input); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setDELETE removes a set.
func (app *application) setDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.DeleteSet(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
