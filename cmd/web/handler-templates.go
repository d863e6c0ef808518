package main

import (
	"net/http"

	"github.com/myrjola/liftlog/internal/workout"
)

// templatesGET returns the user's saved templates and the patterns inferred
// from recent workouts, narrowed by the optional case-insensitive filter.
func (app *application) templatesGET(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	catalog, err := app.workoutService.Templates(r.Context(), filter)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, catalog)
}

// templatePOST saves a user template.
func (app *application) templatePOST(w http.ResponseWriter, r *http.Request) {
	var input workout.TemplateInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	tmpl, err := app.workoutService.CreateTemplate(r.Context(), input)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, tmpl)
}

// templateDELETE removes a user template.
func (app *application) templateDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.DeleteTemplate(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
