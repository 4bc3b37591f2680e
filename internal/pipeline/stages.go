package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// verbs that may carry a payload unless a route says otherwise
var BodyMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch}

// ParseJSONBody reads the payload of body-bearing requests and stores the
// decoded document with SetBody. An empty payload becomes an empty object.
// Requests using other verbs pass through untouched.
func ParseJSONBody(methods ...string) Stage {
	if len(methods) == 0 {
		methods = BodyMethods
	}

	return func(req Request) error {
		if !slices.Contains(methods, req.Method()) {
			return nil
		}

		raw, err := req.ReadBody()
		if err != nil {
			var maxBytesError *http.MaxBytesError
			if errors.As(err, &maxBytesError) {
				return fmt.Errorf("%w: body must not be larger than %d bytes", ErrPayloadTooLarge, maxBytesError.Limit)
			}
			return fmt.Errorf("%w: unable to read body: %w", ErrMalformedPayload, err)
		}

		if len(raw) == 0 {
			req.SetBody(map[string]any{})
			return nil
		}

		body, err := decodeJSON(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}

		req.SetBody(body)
		return nil
	}
}

// ValidateBody checks the parsed body with validate. It must come after
// ParseJSONBody in the chain.
func ValidateBody(validate func(candidate any, partial bool) bool, partial bool) Stage {
	return func(req Request) error {
		if !validate(req.Body(), partial) {
			return ErrSchemaViolation
		}
		return nil
	}
}

// decodes exactly one JSON value
func decodeJSON(raw []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	var body any
	err := decoder.Decode(&body)
	if err != nil {
		return nil, handleJSONDecodeError(err)
	}

	// ensure the request body contains only a single json value
	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return nil, errors.New("body must only contain a single JSON value")
	}

	return body, nil
}

// processes errors returned by the json decoder
func handleJSONDecodeError(err error) error {
	var syntaxError *json.SyntaxError

	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	// only whitespace was sent
	case errors.Is(err, io.EOF):
		return errors.New("body must not be blank")
	}

	return errors.New(strings.TrimPrefix(err.Error(), "json: "))
}
