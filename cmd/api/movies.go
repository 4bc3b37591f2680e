package main

import (
	"fmt"
	"net/http"

	"github.com/ericksjp703/moviesapi/internal/data"
	"github.com/ericksjp703/moviesapi/internal/pipeline"
	"github.com/ericksjp703/moviesapi/internal/validator"
)

func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	v := validator.New()
	filter := data.ReadFilter(req.Query(), v)
	if !v.Valid() {
		app.failedQueryResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.List(r.Context(), filter)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, success(http.StatusOK, movies), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request, _ pipeline.Request) {
	// get the id from the request
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Get(r.Context(), id)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, success(http.StatusOK, movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	// the validation stage already made sure this is an object
	doc, _ := req.Body().(map[string]any)

	movie, err := app.models.Movies.Insert(r.Context(), data.MovieInputFromDocument(doc))
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	// let the client know where the new resource lives
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, success(http.StatusCreated, movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	doc, _ := req.Body().(map[string]any)

	movie, err := app.models.Movies.Update(r.Context(), id, data.MovieInputFromDocument(doc))
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, success(http.StatusOK, movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request, _ pipeline.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Delete(r.Context(), id)
	if err != nil {
		app.modelErrorResponse(w, r, err)
		return
	}

	body := map[string]any{
		"message":      fmt.Sprintf("movie with id %d was deleted successfully", movie.ID),
		"deletedMovie": movie,
	}

	err = app.writeJSON(w, http.StatusOK, success(http.StatusOK, body), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
