// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes the whole aggregate. Expenses, packing items and
// group notes live inside the document, so they go with it.
// DELETE /projects/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("project not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := projectstore.New(h.DB)
	p, level, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}
	if !level.CanManage() {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can delete a project"))
		return
	}

	deleted, err := store.Delete(ctx, projectID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if deleted == 0 {
		// Removed between the access check and the delete.
		httpjson.WriteError(w, h.Log, httpjson.NotFound("project not found"))
		return
	}

	h.Log.Info("project deleted",
		zap.String("project_id", projectID.Hex()),
		zap.String("owner_id", uid.Hex()),
		zap.String("name", p.Name))

	httpjson.Write(w, http.StatusOK, map[string]string{
		"deleted_project_id": projectID.Hex(),
	})
}
