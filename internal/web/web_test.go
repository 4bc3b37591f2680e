package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	page, err := RenderWelcome(WelcomeData{
		Version: "1.2.3",
		Env:     "testing",
		Routes:  []Route{{Method: "GET", Path: "/movies", Description: "<list>"}},
	})
	require.NoError(t, err)

	body := string(page)
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "Version 1.2.3 running in testing mode.")
	assert.Contains(t, body, "<code>GET /movies</code>")
	// template data is escaped
	assert.Contains(t, body, "&lt;list&gt;")
}

func TestWriteHTML(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteHTML(rr, http.StatusOK, []byte("<p>hi</p>"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", rr.Body.String())
}
