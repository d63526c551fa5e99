// internal/app/store/projects/projectstore.go
//
// Store persists the Project aggregate. The whole document is the unit of
// consistency: mutations load it, change it in memory, and write it back in
// one ReplaceOne guarded by the version counter, so concurrent writers to the
// same project cannot silently overwrite each other's sub-entities.
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrVersionConflict is returned by Save when the stored document no longer
// carries the version the aggregate was loaded at, meaning another writer
// saved in between. The caller's change has not been applied.
var ErrVersionConflict = errors.New("project was modified concurrently; reload and retry")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Create inserts a new aggregate with empty sub-collections.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	if p.Expenses == nil {
		p.Expenses = []models.Expense{}
	}
	if p.PackingList == nil {
		p.PackingList = []models.PackingItem{}
	}
	if p.GroupNotes == nil {
		p.GroupNotes = []models.GroupNote{}
	}
	if p.Sharing.SharedWith == nil {
		p.Sharing.SharedWith = []primitive.ObjectID{}
	}
	p.Version = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads the full aggregate. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns every project the user owns or collaborates on,
// ordered by start date ascending.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"owner_id": userID},
			bson.M{"sharing.shared_with": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Save writes the mutated aggregate back, guarded by the version it was
// loaded at. On success the in-memory aggregate reflects the stored version.
// Returns ErrVersionConflict when another writer got there first, or
// mongo.ErrNoDocuments when the project has been deleted.
func (s *Store) Save(ctx context.Context, p *models.Project) error {
	loadedVersion := p.Version
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.Version = loadedVersion + 1
	p.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.ID, "version": loadedVersion}, p)
	if err != nil {
		p.Version = loadedVersion
		return err
	}
	if res.MatchedCount == 0 {
		p.Version = loadedVersion
		n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": p.ID})
		if cerr != nil {
			return cerr
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrVersionConflict
	}
	return nil
}

// Delete removes the aggregate and, with it, every owned sub-entity.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
