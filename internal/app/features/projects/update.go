// internal/app/features/projects/update.go
package projects

import (
	"context"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
)

// HandleUpdate applies a partial update to the project's root fields.
// Nested collections and sharing never change on this path; their keys are
// rejected at decode time.
// PUT /projects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	store := projectstore.New(h.DB)
	p, level, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}
	if !level.CanManage() {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner can change project details"))
		return
	}

	var req updateProjectRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	// Validate against the document as it would be after the update, so a
	// date sent alone is still checked against the stored counterpart.
	var res inputval.Result
	if req.Name != nil && normalize.Name(*req.Name) == "" {
		res.Add("name", "name is required")
	}
	if req.Cause != nil && normalize.Name(*req.Cause) == "" {
		res.Add("cause", "cause is required")
	}
	if req.Location != nil && normalize.Name(*req.Location) == "" {
		res.Add("location", "location is required")
	}
	start, end := p.StartDate, p.EndDate
	if req.StartDate != nil {
		if t, valid := parseDate(*req.StartDate); valid {
			start = t
		} else {
			res.Add("start_date", "start date is not a valid date")
		}
	}
	if req.EndDate != nil {
		if t, valid := parseDate(*req.EndDate); valid {
			end = t
		} else {
			res.Add("end_date", "end date is not a valid date")
		}
	}
	if start.After(end) {
		res.Add("start_date", "start date cannot be after end date")
	}
	if req.Budget != nil && *req.Budget < 0 {
		res.Add("budget", "budget must not be negative")
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	if req.Name != nil {
		p.Name = normalize.Name(*req.Name)
	}
	if req.Cause != nil {
		p.Cause = normalize.Name(*req.Cause)
	}
	if req.Location != nil {
		p.Location = normalize.Name(*req.Location)
	}
	p.StartDate = start
	p.EndDate = end
	if req.Notes != nil {
		p.Notes = sanitize.Sanitize(normalize.Text(*req.Notes))
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusOK, toProjectJSON(p))
}
