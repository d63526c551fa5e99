// internal/app/features/accounts/profile.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleGetProfile returns the caller's account.
// GET /auth/me
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, httpjson.NotFound("account not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toUserJSON(u))
}

// HandleUpdateProfile updates the caller's name and phone. Email and
// password do not change on this path.
// PUT /auth/me
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}

	var req updateProfileRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, httpjson.NotFound("account not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	fullName := u.FullName
	phone := u.Phone
	var res inputval.Result
	if req.FullName != nil {
		fullName = normalize.Name(*req.FullName)
		if fullName == "" {
			res.Add("full_name", "full name is required")
		}
	}
	if req.Phone != nil {
		phone = normalize.Phone(*req.Phone)
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	if err := store.UpdateProfile(ctx, uid, fullName, phone); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, httpjson.NotFound("account not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	u.FullName = fullName
	u.Phone = phone
	httpjson.Write(w, http.StatusOK, toUserJSON(u))
}
