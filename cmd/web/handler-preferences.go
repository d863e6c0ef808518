package main

import (
	"net/http"

	"github.com/myrjola/liftlog/internal/workout"
)

const weightUnitSessionKey = "preferred_weight_unit"

type preferencesResponse struct {
	WeightUnit string `json:"weight_unit"`
}

// preferencesGET returns the client's preferences from the session.
func (app *application) preferencesGET(w http.ResponseWriter, r *http.Request) {
	unit := app.sessionManager.GetString(r.Context(), weightUnitSessionKey)
	if unit == "" {
		unit = string(workout.WeightUnitKg)
	}
	app.writeJSON(w, r, http.StatusOK, preferencesResponse{WeightUnit: unit})
}

// preferencesPOST stores the client's preferences in the session.
func (app *application) preferencesPOST(w http.ResponseWriter, r *http.Request) {
	var req preferencesResponse
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	switch workout.WeightUnit(req.WeightUnit) {
	case workout.WeightUnitKg, workout.WeightUnitLb:
	default:
		app.serverError(w, r, &workout.ValidationError{Field: "weight_unit", Reason: "must be kg or lb"})
		return
	}

	app.sessionManager.Put(r.Context(), weightUnitSessionKey, req.WeightUnit)
	app.writeJSON(w, r, http.StatusOK, preferencesResponse{WeightUnit: req.WeightUnit})
}
