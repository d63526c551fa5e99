// internal/app/features/accounts/handler.go
package accounts

import (
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for account registration,
// login and profile management.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	Tokens       *auth.TokenManager
	LoginLimiter *ratelimit.Limiter
	BcryptCost   int
}

func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.TokenManager, loginLimiter *ratelimit.Limiter, bcryptCost int) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Tokens:       tokens,
		LoginLimiter: loginLimiter,
		BcryptCost:   bcryptCost,
	}
}
