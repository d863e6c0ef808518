package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/myrjola/liftlog/internal/errors"
	"github.com/myrjola/liftlog/internal/workout"
)

const maxRequestBody = 1 << 20

// writeJSON writes v as the JSON response body with the given status.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", slog.Any("error", err))
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	WorkoutID int    `json:"workout_id,omitempty"`
}

// serverError maps domain errors to their status codes and falls back to a
// logged 500.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *workout.ValidationError
		openErr       *workout.OpenWorkoutError
	)
	switch {
	case errors.As(err, &validationErr):
		app.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error: validationErr.Error(),
			Field: validationErr.Field,
		})
	case errors.As(err, &openErr):
		app.writeJSON(w, r, http.StatusConflict, errorResponse{
			Error:     openErr.Error(),
			WorkoutID: openErr.WorkoutID,
		})
	case errors.Is(err, workout.ErrNotFound):
		app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// badRequest reports a malformed request body or parameter.
func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// parseIDParam parses the "id" path parameter. On failure it sends a 404
// because no resource can live at such a path.
func (app *application) parseIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// parseDateQuery parses a YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing %s parameter", name)
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s parameter: %w", name, err)
	}
	return date, nil
}
