package main

import (
	"bytes"
	"net/http"

	"github.com/myrjola/liftlog/internal/workout"
	"github.com/yuin/goldmark"
)

// exercisesGET returns the exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.workoutService.Exercises(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

type exerciseDetailResponse struct {
	workout.Exercise
	DescriptionHTML string `json:"description_html"`
}

// exerciseGET returns one catalog exercise with its description rendered
// from Markdown to HTML.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	exercise, err := app.workoutService.GetExercise(r.Context(), id)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err = goldmark.Convert([]byte(exercise.DescriptionMarkdown), &buf); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, exerciseDetailResponse{
		Exercise:        exercise,
		DescriptionHTML: buf.String(),
	})
}

type createExerciseRequest struct {
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
}

// exercisePOST adds a catalog exercise, generating its description when an
// OpenAI API key is configured.
func (app *application) exercisePOST(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}

	exercise, err := app.workoutService.CreateExercise(r.Context(), req.Name, req.CategoryID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exercise)
}
