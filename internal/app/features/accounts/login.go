// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin verifies credentials and returns a fresh bearer token.
// Unknown email and wrong password produce the same answer so the endpoint
// cannot be used to probe for accounts.
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.LoginLimiter.Allow(ip) {
		h.Log.Warn("login rate limit hit", zap.String("ip", ip))
		httpjson.WriteError(w, h.Log, httpjson.Unavailable("too many login attempts; try again later"))
		return
	}

	var req loginRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("invalid email or password"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("invalid email or password"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("invalid email or password"))
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex(), u.FullName, u.Email)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	// A successful login clears the attempt window for this client.
	h.LoginLimiter.Reset(ip)

	httpjson.Write(w, http.StatusOK, authResponse{
		Token: token,
		User:  toUserJSON(u),
	})
}
