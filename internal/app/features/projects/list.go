// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
)

// HandleList returns every project the caller owns or collaborates on,
// ordered by start date.
// GET /projects
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	results, err := projectstore.New(h.DB).ListForUser(ctx, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	out := make([]projectJSON, 0, len(results))
	for i := range results {
		out = append(out, toProjectJSON(&results[i]))
	}
	httpjson.Write(w, http.StatusOK, out)
}
