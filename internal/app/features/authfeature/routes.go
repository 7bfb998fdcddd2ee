// internal/app/features/authfeature/routes.go
package authfeature

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /auth. Register and login are
// public; /auth/me relies on the token middleware installed app-wide.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/me", h.Me)
	return r
}
