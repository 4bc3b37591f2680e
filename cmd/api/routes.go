package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/metrics"
	"github.com/ericksjp703/moviesapi/internal/pipeline"
)

// a handler that runs after the route stages passed
type stagedHandlerFunc func(w http.ResponseWriter, r *http.Request, req pipeline.Request)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// /movies/ and /Movies are unknown paths, not redirects
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	// OPTIONS is a 405 like any other verb, trusted CORS preflights are
	// answered by enableCORS before the router
	router.HandleOPTIONS = false

	// define default handlers for 404 and 405
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	var (
		parseBody   = pipeline.ParseJSONBody()
		validateAll = pipeline.ValidateBody(data.ValidateMovie, false)
		validateSet = pipeline.ValidateBody(data.ValidateMovie, true)
	)

	router.HandlerFunc(http.MethodGet, "/", app.welcomeHandler)
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)
	if app.config.Metrics.Enabled {
		router.Handler(http.MethodGet, "/metrics", metrics.Handler())
	}

	router.HandlerFunc(http.MethodGet, "/movies", app.handle(nil, app.listMoviesHandler))
	router.HandlerFunc(http.MethodPost, "/movies", app.handle(pipeline.Chain(parseBody, validateAll), app.createMovieHandler))
	router.HandlerFunc(http.MethodGet, "/movies/:id", app.handle(nil, app.showMovieHandler))
	router.HandlerFunc(http.MethodPatch, "/movies/:id", app.handle(pipeline.Chain(parseBody, validateSet), app.updateMovieHandler))
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.handle(nil, app.deleteMovieHandler))

	var handler http.Handler = app.enableCORS(router)
	if app.config.Limiter.Enabled {
		handler = app.rateLimit(handler)
	}

	return app.requestID(app.metrics(router, app.recoverPanic(handler)))
}

// runs the route stages against the request, the handler only sees requests
// that went through all of them
func (app *application) handle(stages []pipeline.Stage, next stagedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := pipeline.NewHTTPRequest(w, r, app.config.MaxBodyBytes)

		pipeline.Run(req, stages, func(err error) {
			if err != nil {
				app.stageFailedResponse(w, r, err)
				return
			}
			next(w, r, req)
		})
	}
}
