// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense categories form a closed set; writes with any other value are
// rejected before they reach the store.
const (
	CategorySupplies       = "Supplies"
	CategoryTransportation = "Transportation"
	CategoryMaterials      = "Materials"
	CategoryOther          = "Other"
)

// ExpenseCategories lists the allowed categories in display order.
var ExpenseCategories = []string{
	CategorySupplies,
	CategoryTransportation,
	CategoryMaterials,
	CategoryOther,
}

// ValidCategory reports whether c is one of the allowed expense categories.
func ValidCategory(c string) bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is a cost recorded against a project's budget. It lives inside the
// project document; its ID is assigned when it is appended and is stable for
// the expense's lifetime.
type Expense struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Description string             `bson:"description" json:"description"`
	Amount      float64            `bson:"amount" json:"amount"`
	Category    string             `bson:"category" json:"category"`
	Date        time.Time          `bson:"date" json:"date"`
}

// PackingItem is one entry on a project's packing checklist.
type PackingItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Item      string             `bson:"item" json:"item"`
	IsPacked  bool               `bson:"is_packed" json:"is_packed"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// GroupNote is a collaborative note on a shared project.
type GroupNote struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Sharing records whether a project has been shared and with whom.
type Sharing struct {
	IsShared   bool                 `bson:"is_shared" json:"is_shared"`
	ShareLink  string               `bson:"share_link" json:"share_link"`
	SharedWith []primitive.ObjectID `bson:"shared_with" json:"shared_with"`
}

// Project is the aggregate root for one volunteer event. The document owns
// its expenses, packing list, group notes, and sharing list; every mutation
// loads the whole document, changes it in memory, and writes it back as one
// unit guarded by Version.
type Project struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	OwnerID  primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Cause    string             `bson:"cause" json:"cause"`
	Location string             `bson:"location" json:"location"`

	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`

	Notes  string  `bson:"notes" json:"notes"`
	Budget float64 `bson:"budget" json:"budget"`

	Expenses    []Expense     `bson:"expenses" json:"expenses"`
	PackingList []PackingItem `bson:"packing_list" json:"packing_list"`
	GroupNotes  []GroupNote   `bson:"group_notes" json:"group_notes"`
	Sharing     Sharing       `bson:"sharing" json:"sharing"`

	// Version is the optimistic-lock counter. Save only succeeds when the
	// stored document still carries the version the aggregate was loaded at.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TotalSpent sums the expense amounts. It is recomputed from the
// authoritative list on every call and never persisted.
func (p *Project) TotalSpent() float64 {
	var sum float64
	for _, e := range p.Expenses {
		sum += e.Amount
	}
	return sum
}

// Remaining is budget minus TotalSpent. Never persisted.
func (p *Project) Remaining() float64 {
	return p.Budget - p.TotalSpent()
}

// Expense returns a pointer to the expense with the given id, or nil.
func (p *Project) Expense(id primitive.ObjectID) *Expense {
	for i := range p.Expenses {
		if p.Expenses[i].ID == id {
			return &p.Expenses[i]
		}
	}
	return nil
}

// RemoveExpense deletes the expense with the given id from the aggregate.
// It reports whether an expense was removed.
func (p *Project) RemoveExpense(id primitive.ObjectID) bool {
	for i := range p.Expenses {
		if p.Expenses[i].ID == id {
			p.Expenses = append(p.Expenses[:i], p.Expenses[i+1:]...)
			return true
		}
	}
	return false
}

// Note returns a pointer to the group note with the given id, or nil.
func (p *Project) Note(id primitive.ObjectID) *GroupNote {
	for i := range p.GroupNotes {
		if p.GroupNotes[i].ID == id {
			return &p.GroupNotes[i]
		}
	}
	return nil
}

// RemoveNote deletes the note with the given id from the aggregate.
// It reports whether a note was removed.
func (p *Project) RemoveNote(id primitive.ObjectID) bool {
	for i := range p.GroupNotes {
		if p.GroupNotes[i].ID == id {
			p.GroupNotes = append(p.GroupNotes[:i], p.GroupNotes[i+1:]...)
			return true
		}
	}
	return false
}

// IsSharedWith reports whether userID is on the collaborator list.
func (p *Project) IsSharedWith(userID primitive.ObjectID) bool {
	for _, id := range p.Sharing.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// ReconcilePacking replaces the current packing list with the submitted one:
// items carrying a known id update the existing entry, items without an id
// (or with an id not on the list) become new entries with fresh ids, and
// current entries absent from the submission are dropped. The result keeps
// the submitted order. UpdatedAt is refreshed only on entries that changed.
func ReconcilePacking(current []PackingItem, submitted []PackingItem, now time.Time) []PackingItem {
	existing := make(map[primitive.ObjectID]PackingItem, len(current))
	for _, it := range current {
		existing[it.ID] = it
	}

	out := make([]PackingItem, 0, len(submitted))
	for _, in := range submitted {
		prev, known := existing[in.ID]
		if !known {
			out = append(out, PackingItem{
				ID:        primitive.NewObjectID(),
				Item:      in.Item,
				IsPacked:  in.IsPacked,
				UpdatedAt: now,
			})
			continue
		}
		next := PackingItem{
			ID:        prev.ID,
			Item:      in.Item,
			IsPacked:  in.IsPacked,
			UpdatedAt: prev.UpdatedAt,
		}
		if next.Item != prev.Item || next.IsPacked != prev.IsPacked {
			next.UpdatedAt = now
		}
		out = append(out, next)
	}
	return out
}
