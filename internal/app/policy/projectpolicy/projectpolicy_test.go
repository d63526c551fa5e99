package projectpolicy_test

import (
	"errors"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolve_Owner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created := fx.CreateProject(ctx, owner, "Mine")

	p, level, err := projectpolicy.Resolve(ctx, projectstore.New(db), created.ID, owner)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if level != projectpolicy.LevelOwner {
		t.Errorf("level: got %v, want owner", level)
	}
	if p.ID != created.ID {
		t.Errorf("project: got %s, want %s", p.ID.Hex(), created.ID.Hex())
	}
	if !level.CanRead() || !level.CanManage() {
		t.Error("owner should be able to read and manage")
	}
}

func TestResolve_Collaborator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	collaborator := primitive.NewObjectID()
	created := fx.CreateProject(ctx, owner, "Shared")
	fx.ShareProject(ctx, created.ID, collaborator)

	_, level, err := projectpolicy.Resolve(ctx, projectstore.New(db), created.ID, collaborator)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if level != projectpolicy.LevelCollaborator {
		t.Errorf("level: got %v, want collaborator", level)
	}
	if !level.CanRead() {
		t.Error("collaborator should be able to read")
	}
	if level.CanManage() {
		t.Error("collaborator should not be able to manage")
	}
}

func TestResolve_Stranger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateProject(ctx, primitive.NewObjectID(), "Private")

	_, _, err := projectpolicy.Resolve(ctx, projectstore.New(db), created.ID, primitive.NewObjectID())
	if !errors.Is(err, projectpolicy.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestResolve_UnknownProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := projectpolicy.Resolve(ctx, projectstore.New(db), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, projectpolicy.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
