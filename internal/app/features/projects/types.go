// internal/app/features/projects/types.go
package projects

import (
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

// projectJSON is the aggregate response shape: the stored document plus the
// derived totals, recomputed from the expense list on every render.
type projectJSON struct {
	*models.Project
	TotalSpent float64 `json:"total_spent"`
	Remaining  float64 `json:"remaining"`
}

func toProjectJSON(p *models.Project) projectJSON {
	return projectJSON{
		Project:    p,
		TotalSpent: p.TotalSpent(),
		Remaining:  p.Remaining(),
	}
}

// createProjectRequest carries the root fields for Create. Budget defaults
// to 0 when omitted.
type createProjectRequest struct {
	Name      string   `json:"name"`
	Cause     string   `json:"cause"`
	Location  string   `json:"location"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Notes     string   `json:"notes"`
	Budget    *float64 `json:"budget"`
}

// updateProjectRequest carries partial root-field updates. Nested
// collections and sharing are not accepted on this path; unknown fields are
// rejected at decode time, so attempts to write them fail validation.
type updateProjectRequest struct {
	Name      *string  `json:"name"`
	Cause     *string  `json:"cause"`
	Location  *string  `json:"location"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Notes     *string  `json:"notes"`
	Budget    *float64 `json:"budget"`
}

// addExpenseRequest accepts "desc" as an alias for "description"; existing
// clients send the short form.
type addExpenseRequest struct {
	Description string   `json:"description"`
	Desc        string   `json:"desc"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
}

func (r *addExpenseRequest) description() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Desc
}

// updateExpenseRequest carries partial expense updates. The expense date is
// immutable after creation; a "date" key fails decoding as an unknown field.
type updateExpenseRequest struct {
	Description *string  `json:"description"`
	Desc        *string  `json:"desc"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
}

func (r *updateExpenseRequest) description() *string {
	if r.Description != nil {
		return r.Description
	}
	return r.Desc
}

// expenseResponse returns the touched expense together with fresh totals, so
// callers can distinguish "nothing happened" from "something happened, see
// totals" without a second fetch.
type expenseResponse struct {
	Expense    models.Expense `json:"expense"`
	TotalSpent float64        `json:"total_spent"`
	Remaining  float64        `json:"remaining"`
}

// deleteExpenseResponse confirms a removal and reports the new totals.
type deleteExpenseResponse struct {
	ExpenseID  string  `json:"expense_id"`
	TotalSpent float64 `json:"total_spent"`
	Remaining  float64 `json:"remaining"`
}

// packingItemInput is one submitted packing-list entry. A known id updates
// the existing item; a missing or unknown id creates a new one.
type packingItemInput struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	IsPacked bool   `json:"is_packed"`
}

// addNoteRequest accepts "note" as an alias for "text".
type addNoteRequest struct {
	Text string `json:"text"`
	Note string `json:"note"`
}

func (r *addNoteRequest) text() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Note
}

type deleteNoteResponse struct {
	NoteID string `json:"note_id"`
}

type inviteRequest struct {
	Email string `json:"email"`
}

// inviteResponse mirrors the original API: the invited user's identifiers
// come back so the client can render the collaborator immediately.
type inviteResponse struct {
	InvitedUserID    string `json:"invited_user_id"`
	InvitedUserEmail string `json:"invited_user_email"`
	ShareLink        string `json:"share_link"`
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
