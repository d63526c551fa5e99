// internal/app/features/projects/notes.go
package projects

import (
	"context"
	"net/http"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/policy/projectpolicy"
	projectstore "github.com/volunteerhub/volunteerhub/internal/app/store/projects"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"github.com/volunteerhub/volunteerhub/internal/app/system/limits"
	"github.com/volunteerhub/volunteerhub/internal/app/system/normalize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAddNote appends a group note. Collaborators can post as well as the
// owner; authorship is recorded server-side from the authenticated caller.
// POST /projects/{id}/group-notes
func (h *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
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
	p, _, err := projectpolicy.Resolve(ctx, store, projectID, uid)
	if err != nil {
		httpjson.WriteError(w, h.Log, guardErr(err))
		return
	}

	var req addNoteRequest
	if apiErr := httpjson.Decode(w, r, limits.MaxJSONBodySize, &req); apiErr != nil {
		httpjson.WriteError(w, h.Log, apiErr)
		return
	}
	text := sanitize.Sanitize(normalize.Text(req.text()))
	if text == "" {
		httpjson.WriteError(w, h.Log, httpjson.ValidationMsg("text", "note text is required"))
		return
	}

	note := models.GroupNote{
		ID:        primitive.NewObjectID(),
		AuthorID:  uid,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	p.GroupNotes = append(p.GroupNotes, note)

	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusCreated, note)
}

// HandleDeleteNote removes a group note. The project owner can remove any
// note; a collaborator only their own.
// DELETE /projects/{id}/group-notes/{noteID}
func (h *Handler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
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
	noteID, ok := pathID(r, "noteID")
	if !ok {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("note not found"))
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

	note := p.Note(noteID)
	if note == nil {
		httpjson.WriteError(w, h.Log, httpjson.NotFound("note not found"))
		return
	}
	if !level.CanManage() && note.AuthorID != uid {
		httpjson.WriteError(w, h.Log, httpjson.Forbidden("only the owner or the note's author can delete it"))
		return
	}

	p.RemoveNote(noteID)
	if err := store.Save(ctx, p); err != nil {
		httpjson.WriteError(w, h.Log, saveErr(err))
		return
	}
	httpjson.Write(w, http.StatusOK, deleteNoteResponse{NoteID: noteID.Hex()})
}
