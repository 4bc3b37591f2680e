package pipeline

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		raw     string
		want    any
		wantErr error
	}{
		{"object", http.MethodPost, `{"title":"A","year":2000}`, map[string]any{"title": "A", "year": 2000.0}, nil},
		{"empty payload", http.MethodPatch, ``, map[string]any{}, nil},
		{"array is parsed, not judged", http.MethodPost, `[1,2]`, []any{1.0, 2.0}, nil},
		{"put is body bearing", http.MethodPut, `{}`, map[string]any{}, nil},
		{"syntax error", http.MethodPost, `{"title":`, nil, ErrMalformedPayload},
		{"bad character", http.MethodPost, `{title: "A"}`, nil, ErrMalformedPayload},
		{"two values", http.MethodPost, `{}{}`, nil, ErrMalformedPayload},
		{"blank", http.MethodPost, `   `, nil, ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &fakeRequest{method: tt.method, raw: []byte(tt.raw)}
			err := ParseJSONBody()(req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req.body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.body)
		})
	}
}

func TestParseJSONBodySkipsOtherMethods(t *testing.T) {
	req := &fakeRequest{method: http.MethodGet, raw: []byte(`not json`)}

	require.NoError(t, ParseJSONBody()(req))
	assert.Zero(t, req.reads)
	assert.Nil(t, req.body)

	// a route may declare its own body-bearing verbs
	req = &fakeRequest{method: http.MethodDelete, raw: []byte(`{"a":1}`)}
	require.NoError(t, ParseJSONBody(http.MethodDelete)(req))
	assert.Equal(t, map[string]any{"a": 1.0}, req.body)
}

func TestParseJSONBodyReadErrors(t *testing.T) {
	req := &fakeRequest{method: http.MethodPost, readErr: &http.MaxBytesError{Limit: 10}}
	err := ParseJSONBody()(req)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Contains(t, err.Error(), "10 bytes")

	req = &fakeRequest{method: http.MethodPost, readErr: errors.New("connection reset")}
	assert.ErrorIs(t, ParseJSONBody()(req), ErrMalformedPayload)
}

func TestValidateBody(t *testing.T) {
	var gotPartial bool
	validate := func(candidate any, partial bool) bool {
		gotPartial = partial
		_, ok := candidate.(map[string]any)
		return ok
	}

	req := &fakeRequest{body: map[string]any{}}
	require.NoError(t, ValidateBody(validate, true)(req))
	assert.True(t, gotPartial)

	req = &fakeRequest{body: []any{}}
	assert.ErrorIs(t, ValidateBody(validate, false)(req), ErrSchemaViolation)
	assert.False(t, gotPartial)
}

func TestParseThenValidate(t *testing.T) {
	validate := func(candidate any, _ bool) bool {
		m, ok := candidate.(map[string]any)
		return ok && m["title"] != nil
	}
	stages := []Stage{ParseJSONBody(), ValidateBody(validate, false)}

	var o outcome
	Run(&fakeRequest{method: http.MethodPost, raw: []byte(`{"title":"A"}`)}, stages, o.done)
	assert.NoError(t, o.err)

	o = outcome{}
	Run(&fakeRequest{method: http.MethodPost, raw: []byte(`{"title":`)}, stages, o.done)
	assert.ErrorIs(t, o.err, ErrMalformedPayload)
	assert.Equal(t, 1, o.calls)

	o = outcome{}
	Run(&fakeRequest{method: http.MethodPost, raw: []byte(`{"year":1}`)}, stages, o.done)
	assert.ErrorIs(t, o.err, ErrSchemaViolation)
}
