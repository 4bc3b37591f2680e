package main

import (
	"context"
	"net/http"
)

// With both the type and the typed constant of the key being unexported, no code
// from outside this package can put data into the context that would cause a collision.

type contextKey uint8

const (
	_ contextKey = iota
	requestIDKey
)

// updates the request context with the given request id
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// gets the request id from the request context, empty when the requestID
// middleware did not run
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
