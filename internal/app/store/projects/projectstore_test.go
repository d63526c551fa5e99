package projectstore_test

import (
	"errors"
	"testing"
	"time"

	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	created, err := store.Create(ctx, models.Project{
		OwnerID:   primitive.NewObjectID(),
		Name:      "Beach Cleanup",
		Cause:     "Environmental",
		Location:  "Dauphin Island",
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 2),
		Budget:    500,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected a generated ID")
	}
	if created.Version != 0 {
		t.Errorf("Version: got %d, want 0", created.Version)
	}
	if created.Expenses == nil || created.PackingList == nil || created.GroupNotes == nil {
		t.Error("expected empty sub-collections, got nil")
	}
	if created.Sharing.IsShared {
		t.Error("new project should not be shared")
	}
}

func TestStore_ListForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	mine := fx.CreateProject(ctx, owner, "Mine")
	shared := fx.CreateProject(ctx, stranger, "Shared With Me")
	fx.ShareProject(ctx, shared.ID, owner)
	fx.CreateProject(ctx, stranger, "Not Mine")

	results, err := store.ListForUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d projects, want 2", len(results))
	}
	seen := map[primitive.ObjectID]bool{}
	for _, p := range results {
		seen[p.ID] = true
	}
	if !seen[mine.ID] || !seen[shared.ID] {
		t.Errorf("results missing owned or shared project: %v", seen)
	}
}

func TestStore_ListForUser_SortedByStartDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{30, 0, 15} {
		_, err := store.Create(ctx, models.Project{
			OwnerID:   owner,
			Name:      "P",
			Cause:     "C",
			Location:  "L",
			StartDate: base.AddDate(0, 0, offset),
			EndDate:   base.AddDate(0, 0, offset+1),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	results, err := store.ListForUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d projects, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].StartDate.Before(results[i-1].StartDate) {
			t.Errorf("results not sorted by start date: %v before %v",
				results[i].StartDate, results[i-1].StartDate)
		}
	}
}

func TestStore_Save_BumpsVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Versioned")

	p, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	p.Budget = 750
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.Version != created.Version+1 {
		t.Errorf("in-memory Version: got %d, want %d", p.Version, created.Version+1)
	}

	reloaded, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after save failed: %v", err)
	}
	if reloaded.Budget != 750 {
		t.Errorf("Budget: got %v, want 750", reloaded.Budget)
	}
	if reloaded.Version != created.Version+1 {
		t.Errorf("stored Version: got %d, want %d", reloaded.Version, created.Version+1)
	}
}

func TestStore_Save_VersionConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Contended")

	// Two readers load the same version.
	first, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	second, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	first.Budget = 600
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second.Budget = 700
	err = store.Save(ctx, second)
	if !errors.Is(err, projectstore.ErrVersionConflict) {
		t.Fatalf("second Save: got %v, want ErrVersionConflict", err)
	}

	// The losing write must not have landed.
	reloaded, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Budget != 600 {
		t.Errorf("Budget: got %v, want the first writer's 600", reloaded.Budget)
	}
}

func TestStore_Save_RetryAfterConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Retry")

	stale, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	fx.AddExpense(ctx, created.ID, "intervening write", 10)

	stale.Budget = 900
	if err := store.Save(ctx, stale); !errors.Is(err, projectstore.ErrVersionConflict) {
		t.Fatalf("stale Save: got %v, want ErrVersionConflict", err)
	}

	// A fresh read-modify-write goes through and keeps both changes.
	fresh, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	fresh.Budget = 900
	if err := store.Save(ctx, fresh); err != nil {
		t.Fatalf("retry Save failed: %v", err)
	}

	final, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if final.Budget != 900 {
		t.Errorf("Budget: got %v, want 900", final.Budget)
	}
	if len(final.Expenses) != 1 {
		t.Errorf("Expenses: got %d, want the intervening expense kept", len(final.Expenses))
	}
}

func TestStore_Save_DeletedProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Doomed")
	p, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if _, err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	p.Budget = 1
	if err := store.Save(ctx, p); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Save after delete: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Gone")

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted count: got %d, want 1", deleted)
	}

	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID after delete: got %v, want mongo.ErrNoDocuments", err)
	}

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete count: got %d, want 0", deleted)
	}
}
