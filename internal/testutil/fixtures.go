// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: []byte("$2a$10$test-not-a-real-hash"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateProject creates a test project owned by the given user, with empty
// sub-collections and a zero version.
func (f *Fixtures) CreateProject(ctx context.Context, ownerID primitive.ObjectID, name string) models.Project {
	f.t.Helper()
	return f.CreateProjectWithBudget(ctx, ownerID, name, 500)
}

// CreateProjectWithBudget creates a test project with an explicit budget.
func (f *Fixtures) CreateProjectWithBudget(ctx context.Context, ownerID primitive.ObjectID, name string, budget float64) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        name,
		NameCI:      text.Fold(name),
		Cause:       "Environmental",
		Location:    "Test Beach",
		StartDate:   now.AddDate(0, 1, 0),
		EndDate:     now.AddDate(0, 1, 2),
		Budget:      budget,
		Expenses:    []models.Expense{},
		PackingList: []models.PackingItem{},
		GroupNotes:  []models.GroupNote{},
		Sharing: models.Sharing{
			SharedWith: []primitive.ObjectID{},
		},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// AddExpense appends an expense directly to a stored project and bumps its
// version, the same way a concurrent writer would.
func (f *Fixtures) AddExpense(ctx context.Context, projectID primitive.ObjectID, description string, amount float64) models.Expense {
	f.t.Helper()

	exp := models.Expense{
		ID:          primitive.NewObjectID(),
		Description: description,
		Amount:      amount,
		Category:    models.CategorySupplies,
		Date:        time.Now().UTC(),
	}
	_, err := f.db.Collection("projects").UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$push": bson.M{"expenses": exp},
			"$inc":  bson.M{"version": 1},
		})
	if err != nil {
		f.t.Fatalf("failed to add test expense: %v", err)
	}
	return exp
}

// ShareProject grants a user collaborator access to a stored project.
func (f *Fixtures) ShareProject(ctx context.Context, projectID, userID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("projects").UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$push": bson.M{"sharing.shared_with": userID},
			"$set":  bson.M{"sharing.is_shared": true},
			"$inc":  bson.M{"version": 1},
		})
	if err != nil {
		f.t.Fatalf("failed to share test project: %v", err)
	}
}
