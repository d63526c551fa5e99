// internal/app/features/projects/handler.go
package projects

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the projects feature. It
// holds the Mongo database and the logger so the per-operation handlers
// (lifecycle, expenses, packing list, group notes, sharing) share the same
// core dependencies.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a projects Handler. It is called from the bootstrap
// BuildHandler function, where the application's DB and logger are already
// initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}
