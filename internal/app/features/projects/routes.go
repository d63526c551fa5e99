// internal/app/features/projects/routes.go
package projects

import (
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /projects requires a valid bearer token.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireUser)

		// LIFECYCLE
		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		// FINANCIAL LEDGER
		pr.Post("/{id}/expenses", h.HandleAddExpense)
		pr.Put("/{id}/expenses/{expenseID}", h.HandleUpdateExpense)
		pr.Delete("/{id}/expenses/{expenseID}", h.HandleDeleteExpense)

		// PACKING CHECKLIST
		pr.Get("/{id}/packing-list", h.HandleGetPackingList)
		pr.Put("/{id}/packing-list", h.HandleReplacePackingList)

		// COLLABORATION NOTES
		pr.Post("/{id}/group-notes", h.HandleAddNote)
		pr.Delete("/{id}/group-notes/{noteID}", h.HandleDeleteNote)

		// SHARING
		pr.Post("/{id}/invite-user", h.HandleInvite)
	})

	return r
}
