// Package pipeline runs the ordered stages a route declares (body parsing,
// validation) against one request before its handler is allowed to run.
package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrSchemaViolation  = errors.New("schema violation")
	// a stage panicked
	ErrFault = errors.New("stage fault")
)

// Request is everything a stage may see or touch of an inbound request.
type Request interface {
	Method() string
	Path() string
	Header() http.Header
	// decoded query string, the last value wins on repeated keys
	Query() map[string]string
	// blocks until the whole payload was read or the size limit was hit
	ReadBody() ([]byte, error)
	// the structured body set by a parsing stage, nil before that
	Body() any
	SetBody(body any)
}

// Stage returns nil to let the next stage run, or the reason to stop.
type Stage func(req Request) error

// Run executes stages in order and calls done exactly once: with nil when
// every stage passed, or with the first failure. A panicking stage counts as
// a failure wrapping ErrFault. Panics raised by done itself are not caught.
func Run(req Request, stages []Stage, done func(err error)) {
	for _, stage := range stages {
		err := runStage(stage, req)
		if err != nil {
			done(err)
			return
		}
	}

	done(nil)
}

func runStage(stage Stage, req Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrFault, rec)
		}
	}()

	return stage(req)
}

// Chain builds a stage list, skipping nil entries.
func Chain(stages ...Stage) []Stage {
	chain := make([]Stage, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return chain
}
