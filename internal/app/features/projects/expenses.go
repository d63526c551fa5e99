// internal/app/features/projects/expenses.go
package projects

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validAmount(a float64) bool {
	return a > 0 && !math.IsNaN(a) && !math.IsInf(a, 0)
}

// HandleAddExpense appends an expense to the project ledger.
// POST /projects/{id}/expenses
func (h *Handler) HandleAddExpense(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("project not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Access is resolved before the body is read: callers without access
	// see 404/403, never validation detail.
	store := projectstore.New(h.DB)
	p, level, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}
	if !level.CanManage() {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can manage expenses"))
		return
	}

	var req addExpenseRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	var date time.Time
	var res inputval.Result
	res.Require("description", req.description(), "description is required")
	switch {
	case req.Amount == nil:
		res.Add("amount", "amount is required")
	case !validAmount(*req.Amount):
		res.Add("amount", "amount must be a positive number")
	}
	if !models.ValidCategory(req.Category) {
		res.Add("category", "category must be one of Supplies, Transportation, Materials, Other")
	}
	if req.Date == "" {
		res.Add("date", "date is required")
	} else if t, valid := parseDate(req.Date); valid {
		date = t
	} else {
		res.Add("date", "date is not a valid date")
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	exp := models.Expense{
		ID:          primitive.NewObjectID(),
		Description: sanitize.Sanitize(normalize.Text(req.description())),
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        date,
	}
	p.Expenses = append(p.Expenses, exp)

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusCreated, expenseResponse{
		Expense:    exp,
		TotalSpent: p.TotalSpent(),
		Remaining:  p.Remaining(),
	})
}

// HandleUpdateExpense applies a partial update to one expense. The date is
// fixed at creation; a "date" key in the body fails decoding.
// PUT /projects/{id}/expenses/{expenseID}
func (h *Handler) HandleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("project not found"))
		return
	}
	expenseID, ok := pathID(r, "expenseID")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("expense not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := projectstore.New(h.DB)
	p, level, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}
	if !level.CanManage() {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can manage expenses"))
		return
	}

	var req updateExpenseRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	var res inputval.Result
	if d := req.description(); d != nil && normalize.Text(*d) == "" {
		res.Add("description", "description is required")
	}
	if req.Amount != nil && !validAmount(*req.Amount) {
		res.Add("amount", "amount must be a positive number")
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		res.Add("category", "category must be one of Supplies, Transportation, Materials, Other")
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	exp := p.Expense(expenseID)
	if exp == nil {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("expense not found"))
		return
	}
	if d := req.description(); d != nil {
		exp.Description = sanitize.Sanitize(normalize.Text(*d))
	}
	if req.Amount != nil {
		exp.Amount = *req.Amount
	}
	if req.Category != nil {
		exp.Category = *req.Category
	}

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusOK, expenseResponse{
		Expense:    *exp,
		TotalSpent: p.TotalSpent(),
		Remaining:  p.Remaining(),
	})
}

// HandleDeleteExpense removes one expense from the ledger.
// DELETE /projects/{id}/expenses/{expenseID}
func (h *Handler) HandleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("project not found"))
		return
	}
	expenseID, ok := pathID(r, "expenseID")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("expense not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := projectstore.New(h.DB)
	p, level, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}
	if !level.CanManage() {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can manage expenses"))
		return
	}

	if !p.RemoveExpense(expenseID) {
		// Nothing removed, nothing saved: the document stays untouched.
		httpjson.WriteError(w, h.Log, httpjson.NotFound("expense not found"))
		return
	}

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusOK, deleteExpenseResponse{
		ExpenseID:  expenseID.Hex(),
		TotalSpent: p.TotalSpent(),
		Remaining:  p.Remaining(),
	})
}
