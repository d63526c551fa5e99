// internal/app/policy/projectpolicy/projectpolicy.go
//
// Package projectpolicy is the access-control guard for the project
// aggregate. Every project request resolves the caller's access level here
// before dispatching to the operation; owner-only operations re-check the
// level themselves so each stays independently correct.
package projectpolicy

import (
	"context"
	"errors"

	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Level is the caller's resolved access to a project.
type Level int

const (
	LevelNone Level = iota
	LevelCollaborator
	LevelOwner
)

var (
	// ErrNotFound means the project id does not resolve.
	ErrNotFound = errors.New("project not found")
	// ErrForbidden means the caller is neither owner nor collaborator.
	ErrForbidden = errors.New("not authorized to access this project")
)

// CanRead reports whether the level grants read access to the aggregate and
// its sub-collections.
func (l Level) CanRead() bool {
	return l == LevelOwner || l == LevelCollaborator
}

// CanManage reports whether the level grants structural writes: project
// fields, expenses, packing list, sharing.
func (l Level) CanManage() bool {
	return l == LevelOwner
}

// String returns the level name for logging.
func (l Level) String() string {
	switch l {
	case LevelOwner:
		return "owner"
	case LevelCollaborator:
		return "collaborator"
	default:
		return "none"
	}
}

// Resolve loads the aggregate and classifies the caller. It returns the
// loaded project so operations mutate exactly the document the access
// decision was made against.
func Resolve(ctx context.Context, store *projectstore.Store, projectID, callerID primitive.ObjectID) (*models.Project, Level, error) {
	p, err := store.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, LevelNone, ErrNotFound
		}
		return nil, LevelNone, err
	}
	if p.OwnerID == callerID {
		return p, LevelOwner, nil
	}
	if p.IsSharedWith(callerID) {
		return p, LevelCollaborator, nil
	}
	return nil, LevelNone, ErrForbidden
}
