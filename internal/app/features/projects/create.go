// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"time"

	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/inputval"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

// HandleCreate creates a new project owned by the caller.
// POST /projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.Unauthenticated("a valid bearer token is required"))
		return
	}

	var req createProjectRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}

	// Collect every violated constraint before answering.
	var res inputval.Result
	res.Require("name", req.Name, "name is required")
	res.Require("cause", req.Cause, "cause is required")
	res.Require("location", req.Location, "location is required")
	var start, end time.Time
	if req.StartDate == "" {
		res.Add("start_date", "start date is required")
	} else if t, valid := parseDate(req.StartDate); !valid {
		res.Add("start_date", "start date is not a valid date")
	} else {
		start = t
	}
	if req.EndDate == "" {
		res.Add("end_date", "end date is required")
	} else if t, valid := parseDate(req.EndDate); !valid {
		res.Add("end_date", "end date is not a valid date")
	} else {
		end = t
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		res.Add("start_date", "start date cannot be after end date")
	}
	budget := 0.0
	if req.Budget != nil {
		if *req.Budget < 0 {
			res.Add("budget", "budget must not be negative")
		} else {
			budget = *req.Budget
		}
	}
	if res.HasErrors() {
		httpjson.WriteError(w, h.Log, httpjson.Validation(&res))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := projectstore.New(h.DB).Create(ctx, models.Project{
		OwnerID:   uid,
		Name:      normalize.Name(req.Name),
		Cause:     normalize.Name(req.Cause),
		Location:  normalize.Name(req.Location),
		StartDate: start,
		EndDate:   end,
		Notes:     sanitize.Sanitize(normalize.Text(req.Notes)),
		Budget:    budget,
		Sharing: models.Sharing{
			IsShared: false,
		},
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, toProjectJSON(&created))
}
