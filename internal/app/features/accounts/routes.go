// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// PUBLIC
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// AUTHENTICATED
	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireUser)
		ar.Get("/me", h.HandleGetProfile)
		ar.Put("/me", h.HandleUpdateProfile)
	})

	return r
}
