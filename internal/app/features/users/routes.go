// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /users. All routes sit behind
// the app-wide token middleware; the handlers gate per-route.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Post("/{id}/role", h.AssignRole)
	r.Delete("/{id}", h.Delete)
	return r
}
