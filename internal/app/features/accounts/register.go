// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// HandleRegister creates an account and signs the new user in. Email
// uniqueness is case-insensitive and ultimately enforced by the unique
// index, so a racing duplicate still comes back as a conflict.
// POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	email := normalize.Email(req.Email)
	var res inputval.Result
	res.Require("full_name", normalize.Name(req.FullName), "full name is required")
	if !inputval.IsValidEmail(email) {
		res.Add("email", "a valid email address is required")
	}
	if len(req.Password) < minPasswordLength {
		res.Add("password", "password must be at least 8 characters")
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, models.User{
		FullName:     normalize.Name(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Phone:        normalize.Phone(req.Phone),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.WriteError(w, h.Log, httpjson.Conflict("an account with this email already exists"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(created.ID.Hex(), created.FullName, created.Email)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("account registered", zap.String("user_id", created.ID.Hex()))

	httpjson.Write(w, http.StatusCreated, authResponse{
		Token: token,
		User:  toUserJSON(&created),
	})
}
