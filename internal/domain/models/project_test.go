package models_test

import (
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func expense(amount float64) models.Expense {
	return models.Expense{
		ID:          primitive.NewObjectID(),
		Description: "supplies",
		Amount:      amount,
		Category:    models.CategorySupplies,
		Date:        time.Now().UTC(),
	}
}

func TestProject_Totals(t *testing.T) {
	p := models.Project{
		Budget: 500,
		Expenses: []models.Expense{
			expense(45.50),
		},
	}

	if got := p.TotalSpent(); got != 45.50 {
		t.Errorf("TotalSpent: got %v, want %v", got, 45.50)
	}
	if got := p.Remaining(); got != 454.50 {
		t.Errorf("Remaining: got %v, want %v", got, 454.50)
	}
}

func TestProject_Totals_NoExpenses(t *testing.T) {
	p := models.Project{Budget: 200}

	if got := p.TotalSpent(); got != 0 {
		t.Errorf("TotalSpent: got %v, want 0", got)
	}
	if got := p.Remaining(); got != 200 {
		t.Errorf("Remaining: got %v, want %v", got, 200.0)
	}
}

func TestProject_Remaining_CanGoNegative(t *testing.T) {
	p := models.Project{
		Budget:   100,
		Expenses: []models.Expense{expense(60), expense(70)},
	}

	if got := p.Remaining(); got != -30 {
		t.Errorf("Remaining: got %v, want %v", got, -30.0)
	}
}

func TestProject_ExpenseLookupAndRemove(t *testing.T) {
	a := expense(10)
	b := expense(20)
	p := models.Project{Expenses: []models.Expense{a, b}}

	if got := p.Expense(a.ID); got == nil || got.ID != a.ID {
		t.Fatalf("Expense(%s): got %v, want expense a", a.ID.Hex(), got)
	}
	if got := p.Expense(primitive.NewObjectID()); got != nil {
		t.Errorf("Expense(unknown): got %v, want nil", got)
	}

	if !p.RemoveExpense(a.ID) {
		t.Error("RemoveExpense(a): got false, want true")
	}
	if len(p.Expenses) != 1 || p.Expenses[0].ID != b.ID {
		t.Errorf("after remove: got %d expenses, want only b", len(p.Expenses))
	}
	if p.RemoveExpense(a.ID) {
		t.Error("RemoveExpense(a) twice: got true, want false")
	}
}

func TestProject_IsSharedWith(t *testing.T) {
	collaborator := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	p := models.Project{
		Sharing: models.Sharing{
			IsShared:   true,
			SharedWith: []primitive.ObjectID{collaborator},
		},
	}

	if !p.IsSharedWith(collaborator) {
		t.Error("IsSharedWith(collaborator): got false, want true")
	}
	if p.IsSharedWith(stranger) {
		t.Error("IsSharedWith(stranger): got true, want false")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range models.ExpenseCategories {
		if !models.ValidCategory(c) {
			t.Errorf("ValidCategory(%q): got false, want true", c)
		}
	}
	for _, c := range []string{"", "supplies", "Food", "OTHER"} {
		if models.ValidCategory(c) {
			t.Errorf("ValidCategory(%q): got true, want false", c)
		}
	}
}

func TestReconcilePacking_UpdateInsertDelete(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	keep := models.PackingItem{ID: primitive.NewObjectID(), Item: "Gloves", IsPacked: false, UpdatedAt: base}
	drop := models.PackingItem{ID: primitive.NewObjectID(), Item: "Trash bags", IsPacked: true, UpdatedAt: base}
	current := []models.PackingItem{keep, drop}

	now := base.Add(time.Hour)
	submitted := []models.PackingItem{
		{ID: keep.ID, Item: "Gloves", IsPacked: true},
		{Item: "Sunscreen", IsPacked: false},
	}

	result := models.ReconcilePacking(current, submitted, now)

	if len(result) != 2 {
		t.Fatalf("got %d items, want 2", len(result))
	}
	if result[0].ID != keep.ID {
		t.Errorf("first item id: got %s, want kept id %s", result[0].ID.Hex(), keep.ID.Hex())
	}
	if !result[0].IsPacked {
		t.Error("kept item: got IsPacked=false, want true")
	}
	if !result[0].UpdatedAt.Equal(now) {
		t.Errorf("changed item UpdatedAt: got %v, want %v", result[0].UpdatedAt, now)
	}
	if result[1].ID.IsZero() {
		t.Error("new item: expected an assigned id")
	}
	if result[1].Item != "Sunscreen" {
		t.Errorf("new item name: got %q, want %q", result[1].Item, "Sunscreen")
	}
	for _, it := range result {
		if it.ID == drop.ID {
			t.Error("item missing from submission should have been removed")
		}
	}
}

func TestReconcilePacking_UnchangedKeepsTimestamp(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := models.PackingItem{ID: primitive.NewObjectID(), Item: "Gloves", IsPacked: true, UpdatedAt: base}

	result := models.ReconcilePacking(
		[]models.PackingItem{item},
		[]models.PackingItem{{ID: item.ID, Item: "Gloves", IsPacked: true}},
		base.Add(time.Hour),
	)

	if len(result) != 1 {
		t.Fatalf("got %d items, want 1", len(result))
	}
	if !result[0].UpdatedAt.Equal(base) {
		t.Errorf("unchanged item UpdatedAt: got %v, want %v", result[0].UpdatedAt, base)
	}
}

func TestReconcilePacking_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	submitted := []models.PackingItem{{Item: "Water jugs", IsPacked: false}}

	first := models.ReconcilePacking(nil, submitted, now)
	if len(first) != 1 {
		t.Fatalf("first reconcile: got %d items, want 1", len(first))
	}

	// Resubmitting what the server returned must not duplicate the entry.
	second := models.ReconcilePacking(first, first, now.Add(time.Minute))
	if len(second) != 1 {
		t.Fatalf("second reconcile: got %d items, want 1", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Errorf("item id changed across reconciles: got %s, want %s", second[0].ID.Hex(), first[0].ID.Hex())
	}
}

func TestReconcilePacking_UnknownIDTreatedAsNew(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ghost := primitive.NewObjectID()

	result := models.ReconcilePacking(nil, []models.PackingItem{{ID: ghost, Item: "Rope"}}, now)

	if len(result) != 1 {
		t.Fatalf("got %d items, want 1", len(result))
	}
	if result[0].ID == ghost {
		t.Error("unknown submitted id should be replaced with a fresh one")
	}
	if result[0].ID.IsZero() {
		t.Error("new item: expected an assigned id")
	}
}
