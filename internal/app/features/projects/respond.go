// internal/app/features/projects/respond.go
package projects

import (
	"errors"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// sanitize strips markup from user-supplied free text before it is stored.
var sanitize = bluemonday.StrictPolicy()

// guardErr translates access-guard failures to API errors. Anything else
// passes through for the boundary's unavailable/internal mapping.
func guardErr(err error) error {
	switch {
	case errors.Is(err, projectpolicy.ErrNotFound):
		return httpjson.NotFound("project not found")
	case errors.Is(err, projectpolicy.ErrForbidden):
		return httpjson.Forbidden("not authorized to access this project")
	default:
		return err
	}
}

// saveErr translates aggregate-save failures. A version mismatch means the
// caller's change was not applied and should be retried against a fresh read.
func saveErr(err error) error {
	switch {
	case errors.Is(err, projectstore.ErrVersionConflict):
		return httpjson.Conflict("project was modified concurrently; reload and retry")
	case errors.Is(err, mongo.ErrNoDocuments):
		return httpjson.NotFound("project not found")
	default:
		return err
	}
}

// pathID parses the {param} URL segment as an ObjectID. A malformed id can
// never resolve, so it reports not-found rather than validation.
func pathID(r *http.Request, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
