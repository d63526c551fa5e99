// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// RequestUser is the request-scoped identity injected into r.Context() by the
// bearer middleware. Core operations receive it explicitly; nothing reads
// identity from ambient storage.
type RequestUser struct {
	ID    string
	Name  string
	Email string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*RequestUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*RequestUser)
	return u, ok
}

func withUser(r *http.Request, u *RequestUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing token
// verification. For handler tests only.
func WithTestUser(r *http.Request, u *RequestUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Token manager                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserFetcher resolves a user id to a fresh RequestUser on each request, so
// profile edits and deleted accounts take effect immediately. Returning nil
// means the user no longer exists (or the lookup failed and the request
// should proceed unauthenticated).
type UserFetcher interface {
	FetchUser(ctx context.Context, id string) *RequestUser
}

// TokenManager issues and verifies the opaque bearer tokens that encode the
// caller's user id. Tokens are HMAC-signed JWTs.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager creates a token manager. The secret must be strong in
// production; ttl bounds how long an issued token stays valid.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// SetUserFetcher makes the middleware re-resolve the user on every request
// instead of trusting the claims snapshot.
func (m *TokenManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// Issue creates a signed token for the given user id.
func (m *TokenManager) Issue(userID, name, email string) (string, error) {
	now := time.Now()
	c := &claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it encodes.
func (m *TokenManager) Verify(tokenString string) (*RequestUser, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &RequestUser{ID: c.Subject, Name: c.Name, Email: c.Email}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// LoadUser injects the authenticated user into context when a valid bearer
// token is presented. Requests without a token continue unauthenticated;
// RequireUser decides whether that is acceptable per route.
func (m *TokenManager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := bearerToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := m.Verify(tok)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if m.fetcher != nil {
			fresh := m.fetcher.FetchUser(r.Context(), u.ID)
			if fresh == nil {
				// Token holder no longer exists (or lookup failed).
				next.ServeHTTP(w, r)
				return
			}
			u = fresh
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireUser rejects requests that did not authenticate with 401 before any
// access-control decision runs.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthenticated","message":"a valid bearer token is required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
