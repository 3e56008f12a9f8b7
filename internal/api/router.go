package api

import (
	"net/http"

	"order-service/internal/api/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the browser flows and the JSON search endpoints.
// Unmatched paths and recovered panics both land on the index page with a
// flash message, mirroring the original browser-facing error policy.
func NewRouter(
	index http.HandlerFunc,
	customer *handlers.CustomerHandler,
	staff *handlers.StaffHandler,
	search *handlers.SearchHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(handlers.Recover)

	r.Get("/", index)

	r.Route("/customer", func(r chi.Router) {
		r.Get("/", customer.List)
		r.Get("/order/{orderNumber}", customer.View)
		r.Get("/order/{orderNumber}/edit", customer.EditForm)
		r.Post("/order/{orderNumber}/edit", customer.Edit)
		r.Post("/order/{orderNumber}/cancel", customer.Cancel)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Get("/", staff.List)
		r.Get("/order/create", staff.CreateForm)
		r.Post("/order/create", staff.Create)
		r.Get("/order/{orderNumber}/edit", staff.EditForm)
		r.Post("/order/{orderNumber}/edit", staff.Edit)
		r.Post("/order/{orderNumber}/delete", staff.Delete)
	})

	r.Get("/api/clients/search", search.Clients)
	r.Get("/api/clients/{clientID}", search.Client)
	r.Get("/api/goods/search", search.Goods)
	r.Get("/api/goods/{goodID}", search.Good)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.NotFoundRedirect(w, r)
	})

	return r
}
