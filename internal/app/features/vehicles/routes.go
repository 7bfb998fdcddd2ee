// internal/app/features/vehicles/routes.go
package vehicles

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /vehicles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
