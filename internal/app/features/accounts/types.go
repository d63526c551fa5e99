// internal/app/features/accounts/types.go
package accounts

import (
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userJSON is the account shape returned to clients. The password hash
// never serializes, but keeping an explicit response type makes that a
// property of the API rather than of one struct tag.
type userJSON struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:        u.ID.Hex(),
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// authResponse carries the bearer token plus the account it identifies.
type authResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}
