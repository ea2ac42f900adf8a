package utils

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"hangman/log"
	"hangman/web"

	"github.com/google/uuid"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

var pages = map[string]*template.Template{}

func init() {
	for _, page := range []string{"game.html"} {
		pages[page] = template.Must(
			template.New(page).Funcs(funcs).ParseFS(web.Templates, "templates/base.html", "templates/"+page),
		)
	}
}

// GenerateID returns a new random session identifier.
func GenerateID() string {
	return uuid.NewString()
}

// RenderPage executes the "base" layout with the given page as its content.
func RenderPage(w http.ResponseWriter, file string, data map[string]interface{}) {
	tmpl, ok := pages[file]
	if !ok {
		http.Error(w, "Template not found: "+file, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		log.Error("template %s: %v", file, err)
	}
}

// RenderJSON writes v as a JSON response.
func RenderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
