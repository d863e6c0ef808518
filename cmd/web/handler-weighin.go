package main

import (
	"net/http"
	"time"
)

type addWeighInRequest struct {
	Weight     float64    `json:"weight"`
	Unit       string     `json:"unit"`
	MeasuredAt *time.Time `json:"measured_at"`
}

// weighInsGET returns logged body-weight measurements, newest first.
func (app *application) weighInsGET(w http.ResponseWriter, r *http.Request) {
	weighIns, err := app.workoutService.WeighIns(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, weighIns)
}

// weighInPOST records a body-weight measurement.
func (app *application) weighInPOST(w http.ResponseWriter, r *http.Request) {
	var req addWeighInRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	measuredAt := time.Now()
	if req.MeasuredAt != nil {
		measuredAt = *req.MeasuredAt
	}

	weighIn, err := app.workoutService.AddWeighIn(r.Context(), req.Weight, req.Unit, measuredAt)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, weighIn)
}

// weighInDELETE removes a body-weight measurement.
func (app *application) weighInDELETE(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.DeleteWeighIn(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
