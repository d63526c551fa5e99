package accounts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/features/accounts"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T, db *mongo.Database) *accounts.Handler {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret-0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	// MinCost keeps the hashing fast in tests.
	return accounts.NewHandler(db, zap.NewNop(), tokens, ratelimit.New(100, time.Minute), bcrypt.MinCost)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	} `json:"user"`
}

func register(t *testing.T, h *accounts.Handler, body string) authResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, jsonRequest(http.MethodPost, "/auth/register", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse register response: %v", err)
	}
	return resp
}

func TestHandleRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	resp := register(t, h, `{"full_name":"Riley Rivera","email":"Riley@Test.com","password":"sup3r-secret","phone":"555 0101"}`)

	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "riley@test.com" {
		t.Errorf("email: got %q, want normalized %q", resp.User.Email, "riley@test.com")
	}
	if strings.Contains(strings.ToLower(resp.User.FullName), "password") {
		t.Error("unexpected response content")
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, jsonRequest(http.MethodPost, "/auth/register", `{"email":"bad","password":"short"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp struct {
		Error struct {
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error: %v", err)
	}
	fields := map[string]bool{}
	for _, f := range resp.Error.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"full_name", "email", "password"} {
		if !fields[want] {
			t.Errorf("expected a violation for %q, got %v", want, fields)
		}
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	register(t, h, `{"full_name":"A","email":"dup@test.com","password":"sup3r-secret"}`)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, jsonRequest(http.MethodPost, "/auth/register", `{"full_name":"B","email":"DUP@test.com","password":"sup3r-secret"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d (body %s)", rec.Code, http.StatusConflict, rec.Body.String())
	}
}

func TestHandleLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	register(t, h, `{"full_name":"Riley","email":"riley@test.com","password":"sup3r-secret"}`)

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"RILEY@test.com","password":"sup3r-secret"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse login response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestHandleLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	register(t, h, `{"full_name":"Riley","email":"riley@test.com","password":"sup3r-secret"}`)

	wrongPass := httptest.NewRecorder()
	h.HandleLogin(wrongPass, jsonRequest(http.MethodPost, "/auth/login", `{"email":"riley@test.com","password":"wrong"}`))

	unknown := httptest.NewRecorder()
	h.HandleLogin(unknown, jsonRequest(http.MethodPost, "/auth/login", `{"email":"nobody@test.com","password":"whatever"}`))

	if wrongPass.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want %d", wrongPass.Code, http.StatusUnauthorized)
	}
	if unknown.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: got %d, want %d", unknown.Code, http.StatusUnauthorized)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Error("failure responses should be indistinguishable")
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager("test-secret-0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	h := accounts.NewHandler(db, zap.NewNop(), tokens, ratelimit.New(2, time.Minute), bcrypt.MinCost)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"x@test.com","password":"nope"}`))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want %d", i, rec.Code, http.StatusUnauthorized)
		}
	}

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"x@test.com","password":"nope"}`))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("limited attempt: got %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestProfile_GetAndUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	reg := register(t, h, `{"full_name":"Riley","email":"riley@test.com","password":"sup3r-secret"}`)
	user := testutil.TestUser{ID: reg.User.ID, Name: reg.User.FullName, Email: reg.User.Email}

	rec := httptest.NewRecorder()
	h.HandleGetProfile(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/auth/me", user))
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile: got %d (body %s)", rec.Code, rec.Body.String())
	}

	req := testutil.WithUser(jsonRequest(http.MethodPut, "/auth/me", `{"full_name":"Riley R.","phone":"555 0102"}`), user)
	rec = httptest.NewRecorder()
	h.HandleUpdateProfile(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to parse profile: %v", err)
	}
	if updated.FullName != "Riley R." {
		t.Errorf("full name: got %q, want %q", updated.FullName, "Riley R.")
	}
	if updated.Phone != "5550102" {
		t.Errorf("phone: got %q, want %q", updated.Phone, "5550102")
	}
	if updated.Email != "riley@test.com" {
		t.Errorf("email changed on profile update: got %q", updated.Email)
	}
}
