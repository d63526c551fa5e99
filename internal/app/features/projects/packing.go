// internal/app/features/projects/packing.go
package projects

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleGetPackingList returns the checklist in stored order.
// GET /projects/{id}/packing-list
func (h *Handler) HandleGetPackingList(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _, err := projectpolicy.Resolve(ctx, projectstore.New(h.DB), projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}

	httpjson.Write(w, http.StatusOK, p.PackingList)
}

// HandleReplacePackingList reconciles the stored checklist against the
// submitted one in a single write: entries with a known id are updated,
// entries without one are created, stored entries missing from the
// submission are removed. Submitting the same payload twice leaves the list
// unchanged the second time.
// PUT /projects/{id}/packing-list
func (h *Handler) HandleReplacePackingList(w http.ResponseWriter, r *http.Request) {
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
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can edit the packing list"))
		return
	}

	var items []packingItemInput
	if apiErr := httpjson.Decode(w, r, limits.MaxPackingListSize, &items); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	var res inputval.Result
	for i := range items {
		if normalize.Text(items[i].Item) == "" {
			res.Add(fmt.Sprintf("items[%d].item", i), "every packing item needs a name")
		}
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	submitted := make([]models.PackingItem, 0, len(items))
	for _, in := range items {
		// An absent or malformed id means a new entry; reconciliation
		// assigns the ObjectID.
		id, _ := primitive.ObjectIDFromHex(in.ID)
		submitted = append(submitted, models.PackingItem{
			ID:       id,
			Item:     sanitize.Sanitize(normalize.Text(in.Item)),
			IsPacked: in.IsPacked,
		})
	}
	p.PackingList = models.ReconcilePacking(p.PackingList, submitted, time.Now().UTC())

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusOK, p.PackingList)
}
