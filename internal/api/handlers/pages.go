package handlers

import (
	"log"
	"net/http"
	"runtime/debug"
)

type indexPage struct {
	Flash *Flash
}

// Index returns the landing page handler.
func Index(rnd *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.render(w, "index", indexPage{Flash: popFlash(w, r)})
	}
}

// NotFoundRedirect sends the browser back to the landing page with a
// flash instead of a bare 404.
func NotFoundRedirect(w http.ResponseWriter, r *http.Request) {
	redirectWithFlash(w, r, "/", "warning", "Page not found")
}

// Recover turns a handler panic into the same landing-page redirect the
// rest of the error handling uses, instead of a bare 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rvr, debug.Stack())
				redirectWithFlash(w, r, "/", "danger", "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
