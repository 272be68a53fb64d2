package ui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"airnav/groundcheck/internal/logging"
)

//go:embed templates
var templateFS embed.FS

var funcMap = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
}

// RenderTemplate renders a page template inside the base layout with a 200.
func RenderTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) error {
	return RenderTemplateStatus(w, http.StatusOK, templateName, data)
}

// RenderTemplateStatus renders a page template inside the base layout. The
// page is rendered to a buffer first so a template error still yields a
// clean 500 instead of a half-written page.
func RenderTemplateStatus(w http.ResponseWriter, status int, templateName string, data map[string]interface{}) error {
	t, err := template.New("base.html").Funcs(funcMap).ParseFS(
		templateFS,
		"templates/layouts/base.html",
		"templates/"+templateName,
	)
	if err != nil {
		logging.Error("Error loading template", "template", templateName, "error", err)
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logging.Error("Error rendering template", "template", templateName, "error", err)
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
