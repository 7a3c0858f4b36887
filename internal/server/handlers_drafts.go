package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleCreateDraft creates a draft for the caller. An optional body imports
// existing form data; it must match the draft import schema.
func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request, owner string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	var req types.CreateDraftRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := schemas.ValidateDraftJSON(body); err != nil {
			var verr *schemas.ValidationError
			if errors.As(err, &verr) {
				s.jsonResponse(w, http.StatusBadRequest, map[string]any{
					"error":  "import does not match the draft schema",
					"errors": verr.Errors,
				})
				return
			}
			s.fail(w, r, err)
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			s.fail(w, r, &ErrValidation{Field: "body", Message: err.Error()})
			return
		}
		if err := types.Validate(req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, types.DescribeValidationError(err))
			return
		}
	}

	d := form.NewDraft(owner)
	if err := d.Import(s.registry, req.Fields); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.TemplateID != "" {
		if err := s.templates.Select(d, req.TemplateID, s.entitled(owner)); err != nil {
			s.templateError(w, r, err)
			return
		}
	}

	if err := s.drafts.CreateDraft(r.Context(), d); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Debug().Str("draft", d.ID.String()).Str("owner", owner).Msg("draft created")
	s.jsonResponse(w, http.StatusCreated, d)
}

// handleListDrafts lists the caller's drafts, most recently updated first.
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request, owner string) {
	drafts, err := s.drafts.ListDrafts(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]types.DraftSummary, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, types.DraftSummary{
			ID:         d.ID,
			TemplateID: d.TemplateID,
			CreatedAt:  d.CreatedAt,
			UpdatedAt:  d.UpdatedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"drafts": out})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request, owner string) {
	d, err := s.loadDraft(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request, owner string) {
	id, err := draftID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	deleted, err := s.drafts.DeleteDraft(r.Context(), owner, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !deleted {
		s.fail(w, r, &ErrDraftNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadDraft fetches the {id} draft owned by owner. Drafts stored before a
// section existed are initialized on the way out.
func (s *Server) loadDraft(r *http.Request, owner string) (*form.Draft, error) {
	id, err := draftID(r)
	if err != nil {
		return nil, err
	}
	d, err := s.drafts.GetDraft(r.Context(), owner, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, &ErrDraftNotFound{ID: id}
	}
	d.Initialize(s.registry)
	return d, nil
}

// saveDraft persists d, treating a vanished row as not found.
func (s *Server) saveDraft(r *http.Request, d *form.Draft) error {
	ok, err := s.drafts.SaveDraft(r.Context(), d)
	if err != nil {
		return err
	}
	if !ok {
		return &ErrDraftNotFound{ID: d.ID}
	}
	return nil
}

func draftID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}
