package main

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/pipeline"
)

// helper to use the app logger to log errors
func (app *application) logError(r *http.Request, err error) {
	// using the logger to include current request method, url and id in the log entry
	app.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
		"request_id":     app.contextGetRequestID(r),
	})
}

// generic error response
// this basically will just envelope the error message and send a status 500
// to the client if the error cannot be written to the response
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	err := app.writeJSON(w, status, failure(status, message), nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// specific for 500 internal server error, the cause only goes to the log
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

// specific for 404 not found
func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

// specific for 405 method not allowed. the router already set the Allow header
func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)

	allow := routedMethods(w.Header().Get("Allow"))
	if allow != "" {
		w.Header().Set("Allow", allow)
		message += ", allowed methods: " + allow
	}

	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// the router lists OPTIONS for every path even though no route serves it
func routedMethods(allow string) string {
	methods := strings.Split(allow, ",")
	for i := range methods {
		methods[i] = strings.TrimSpace(methods[i])
	}
	methods = slices.DeleteFunc(methods, func(m string) bool {
		return m == "" || m == http.MethodOptions
	})
	return strings.Join(methods, ", ")
}

// specific for 400 bad request
func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) invalidIDResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "the id must be a valid number")
}

// the body failed the schema, the reason is not reported
func (app *application) invalidBodyResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "invalid body")
}

// 400 for a bad query string, every problem folded into one message
func (app *application) failedQueryResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	problems := make([]string, 0, len(errors))
	for _, key := range slices.Sorted(maps.Keys(errors)) {
		problems = append(problems, key+" "+errors[key])
	}
	app.errorResponse(w, r, http.StatusBadRequest, "invalid query: "+strings.Join(problems, "; "))
}

func (app *application) movieNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("no movie found with id %s", app.rawIDParam(r))
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) duplicateTitleResponse(w http.ResponseWriter, r *http.Request) {
	message := "a movie with the same title already exists"
	app.errorResponse(w, r, http.StatusConflict, message)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, message)
}

// translates a failed pipeline stage
func (app *application) stageFailedResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pipeline.ErrSchemaViolation):
		app.invalidBodyResponse(w, r)
	case errors.Is(err, pipeline.ErrMalformedPayload), errors.Is(err, pipeline.ErrPayloadTooLarge):
		app.badRequestResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// translates a repository failure, one response per sentinel
func (app *application) modelErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		app.movieNotFoundResponse(w, r)
	case errors.Is(err, data.ErrNoRecords):
		app.errorResponse(w, r, http.StatusNotFound, "no movies available")
	case errors.Is(err, data.ErrNoMatches):
		app.errorResponse(w, r, http.StatusNotFound, "no movies match the provided filters")
	case errors.Is(err, data.ErrDuplicateTitle):
		app.duplicateTitleResponse(w, r)
	case errors.Is(err, data.ErrInvalidMovie):
		app.invalidBodyResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
