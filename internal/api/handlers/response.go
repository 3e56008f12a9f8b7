package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Flash is a one-shot message shown on the next rendered page.
// Category is a bootstrap-style level: success, info, warning, danger.
type Flash struct {
	Category string
	Message  string
}

const flashCookie = "flash"

func setFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash returns the pending flash, if any, and clears the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}

	category, message, ok := strings.Cut(value, "|")
	if !ok {
		return &Flash{Category: "info", Message: value}
	}
	return &Flash{Category: category, Message: message}
}

// redirectWithFlash is the browser-flow error and success path: set the
// message, send the user somewhere sensible.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, category, message string) {
	setFlash(w, category, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Renderer executes named page templates from the parsed template set.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer(glob string) (*Renderer, error) {
	tmpl, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (rnd *Renderer) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rnd.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("failed to render %s: %v", name, err)
	}
}
