// Package web renders the html pages served next to the JSON api.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

// this directive embeds the files in the templates directory into the binary

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type Route struct {
	Method      string
	Path        string
	Description string
}

// WelcomeData feeds the "welcome" template.
type WelcomeData struct {
	Version string
	Env     string
	Routes  []Route
}

// RenderWelcome executes the welcome template into a buffer first so a
// template error never leaves a half written page behind.
func RenderWelcome(data WelcomeData) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := templates.ExecuteTemplate(buf, "welcome", data)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML sends page with the html content type.
func WriteHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page)
}
