package main

import (
	"net/http"
)

// statsGET returns the grouped workouts of a date range with their running
// statistics, including placeholder entries for empty days.
func (app *application) statsGET(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if to.Before(from) {
		from, to = to, from
	}

	workouts, err := app.workoutService.Stats(r.Context(), from, to)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workouts)
}
