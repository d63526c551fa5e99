// internal/app/features/projects/invite.go
package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleInvite grants an existing account collaborator access to the
// project. Invites resolve strictly by registered email: there is no
// pending-invite state, so an unknown address changes nothing.
// POST /projects/{id}/invite-user
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
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
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can invite collaborators"))
		return
	}

	var req inviteRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}
	email := normalize.Email(req.Email)
	if !inputval.IsValidEmail(email) {
		httpjson.WriteError(w, h.Log, httpjson.ValidationMsg("email", "a valid email address is required"))
		return
	}

	invited, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, httpjson.NotFound("no account with that email; the user must register first"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if invited.ID == p.OwnerID {
		httpjson.WriteError(w, h.Log, httpjson.ValidationMsg("email", "the owner already has access"))
		return
	}
	if p.IsSharedWith(invited.ID) {
		httpjson.WriteError(w, h.Log, httpjson.ValidationMsg("email", "that user is already a collaborator"))
		return
	}

	p.Sharing.SharedWith = append(p.Sharing.SharedWith, invited.ID)
	p.Sharing.IsShared = true
	p.Sharing.ShareLink = "https://volunteerhub.app/share/" + uuid.NewString()

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}

	h.Log.Info("collaborator invited",
		zap.String("project_id", projectID.Hex()),
		zap.String("owner_id", uid.Hex()),
		zap.String("invited_user_id", invited.ID.Hex()))

	httpjson.Write(w, http.StatusOK, inviteResponse{
		InvitedUserID:    invited.ID.Hex(),
		InvitedUserEmail: invited.Email,
		ShareLink:        p.Sharing.ShareLink,
	})
}
