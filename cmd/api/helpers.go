package main

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/ericksjp703/moviesapi/internal/data"
)

// every json response has this shape
// {"success": true, "statusCode": 200, "data": {...}}
// {"success": false, "statusCode": 404, "error": {"message": "..."}}
type envelope struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"statusCode"`
	Data       any            `json:"data,omitempty"`
	Error      *envelopeError `json:"error,omitempty"`
}

type envelopeError struct {
	Message string `json:"message"`
}

func success(status int, data any) envelope {
	return envelope{Success: true, StatusCode: status, Data: data}
}

func failure(status int, message string) envelope {
	return envelope{StatusCode: status, Error: &envelopeError{Message: message}}
}

func (app *application) writeJSON(w http.ResponseWriter, status int, env envelope, headers http.Header) error {
	// encode the data to json, return error
	js, err := json.Marshal(env)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	// copy the headers to the response writer
	maps.Copy(w.Header(), headers)

	// set the content type, status code and write the json to the response
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// reads the raw :id segment captured by the router
func (app *application) rawIDParam(r *http.Request) string {
	// get the params from the request context (the context is a way to provide data across the requests)
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// parses the :id segment, only plain digits are accepted
func (app *application) readIDParam(r *http.Request) (int64, error) {
	return data.ParseID(app.rawIDParam(r))
}
