package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next))))
		}
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(shared(next)))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(shared(next))))
		}
	)

	mux.Handle("GET /api/stats", api(http.HandlerFunc(app.statsGET)))

	mux.Handle("POST /api/workouts", api(http.HandlerFunc(app.workoutStartPOST)))
	mux.Handle("GET /api/workouts/{id}", api(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /api/workouts/{id}/close", api(http.HandlerFunc(app.workoutClosePOST)))
	mux.Handle("DELETE /api/workouts/{id}", api(http.HandlerFunc(app.workoutDELETE)))
	mux.Handle("POST /api/workouts/{id}/sessions", api(http.HandlerFunc(app.sessionPOST)))
	mux.Handle("DELETE /api/sessions/{id}", api(http.HandlerFunc(app.sessionDELETE)))
	mux.Handle("POST /api/sessions/{id}/sets", api(http.HandlerFunc(app.setPOST)))
	mux.Handle("PUT /api/sets/{id}", api(http.HandlerFunc(app.setPUT)))
	mux.Handle("DELETE /api/sets/{id}", api(http.HandlerFunc(app.setDELETE)))

	mux.Handle("GET /api/templates", api(http.HandlerFunc(app.templatesGET)))
	mux.Handle("POST /api/templates", api(http.HandlerFunc(app.templatePOST)))
	mux.Handle("DELETE /api/templates/{id}", api(http.HandlerFunc(app.templateDELETE)))

	mux.Handle("POST /api/replicate", api(http.HandlerFunc(app.replicatePOST)))

	mux.Handle("GET /api/weigh-ins", api(http.HandlerFunc(app.weighInsGET)))
	mux.Handle("POST /api/weigh-ins", api(http.HandlerFunc(app.weighInPOST)))
	mux.Handle("DELETE /api/weigh-ins/{id}", api(http.HandlerFunc(app.weighInDELETE)))

	mux.Handle("GET /api/exercises", api(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{id}", api(http.HandlerFunc(app.exerciseGET)))
	mux.Handle("POST /api/exercises", api(http.HandlerFunc(app.exercisePOST)))

	mux.Handle("GET /api/preferences", session(http.HandlerFunc(app.preferencesGET)))
	mux.Handle("POST /api/preferences", session(http.HandlerFunc(app.preferencesPOST)))

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	return mux
}
