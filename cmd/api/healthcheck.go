package main

import (
	"net/http"

	"github.com/ericksjp703/moviesapi/internal/web"
)

// healthCheckHandler responds to /healthcheck with the running configuration
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status": "available",
		"system_info": map[string]string{
			"version": version,
			"env":     app.config.Env,
			"storage": app.config.Storage.Driver,
		},
	}

	err := app.writeJSON(w, http.StatusOK, success(http.StatusOK, body), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// the html landing page listing the api routes
func (app *application) welcomeHandler(w http.ResponseWriter, r *http.Request) {
	page, err := web.RenderWelcome(web.WelcomeData{
		Version: version,
		Env:     app.config.Env,
		Routes: []web.Route{
			{Method: http.MethodGet, Path: "/movies", Description: "list movies, filter with ?genre=, ?year= and ?title="},
			{Method: http.MethodGet, Path: "/movies/:id", Description: "show one movie"},
			{Method: http.MethodPost, Path: "/movies", Description: "create a movie from {title, year, genre}"},
			{Method: http.MethodPatch, Path: "/movies/:id", Description: "update some fields of a movie"},
			{Method: http.MethodDelete, Path: "/movies/:id", Description: "delete a movie"},
			{Method: http.MethodGet, Path: "/healthcheck", Description: "service status"},
		},
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	web.WriteHTML(w, http.StatusOK, page)
}
