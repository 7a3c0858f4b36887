package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/section"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleListSections returns every section schema.
func (s *Server) handleListSections(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"sections": s.registry.All()})
}

// editTarget is a draft together with the container for one of its sections.
type editTarget struct {
	draft     *form.Draft
	container *section.Container
}

// loadSection loads the {id} draft and the container for its {section}.
func (s *Server) loadSection(r *http.Request, owner string) (*editTarget, error) {
	name := r.PathValue("section")
	schema, ok := s.registry.Get(name)
	if !ok {
		return nil, &ErrSectionNotFound{Name: name}
	}
	d, err := s.loadDraft(r, owner)
	if err != nil {
		return nil, err
	}
	return &editTarget{draft: d, container: d.Container(schema)}, nil
}

// commit writes the container back into the draft and saves it.
func (s *Server) commit(r *http.Request, t *editTarget) error {
	t.draft.Commit(t.container)
	return s.saveDraft(r, t.draft)
}

func sectionView(c *section.Container) types.SectionView {
	return types.SectionView{
		Section: c.Schema().Name,
		Label:   c.Schema().Label,
		Active:  int(c.Active()),
		Cards:   c.Cards(),
	}
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request, owner string) {
	t, err := s.loadSection(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sectionView(t.container))
}

// handleAddEntry appends an empty entry and expands it.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request, owner string) {
	t, err := s.loadSection(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := t.container.Add(); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.commit(r, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sectionView(t.container))
}

// handleRemoveEntry deletes an entry. The last remaining entry cannot be removed.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request, owner string) {
	t, i, err := s.loadEntry(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := t.container.Remove(i); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.commit(r, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sectionView(t.container))
}

// handleSetField stores a value typed into one field of an entry.
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request, owner string) {
	var req types.SetFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := types.Validate(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, types.DescribeValidationError(err))
		return
	}

	t, i, err := s.loadEntry(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	key := r.PathValue("field")
	if err := t.container.SetField(key, i, *req.Value); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.commit(r, t); err != nil {
		s.fail(w, r, err)
		return
	}

	stored, _ := t.container.Section().Value(key, i)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"field": key,
		"index": i,
		"value": stored,
	})
}

// handleToggleEntry expands or collapses an entry card.
func (s *Server) handleToggleEntry(w http.ResponseWriter, r *http.Request, owner string) {
	t, i, err := s.loadEntry(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := t.container.Toggle(i); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.commit(r, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sectionView(t.container))
}

// loadEntry is loadSection plus a bounds-checked {index}.
func (s *Server) loadEntry(r *http.Request, owner string) (*editTarget, int, error) {
	i, err := pathIndex(r)
	if err != nil {
		return nil, 0, err
	}
	t, err := s.loadSection(r, owner)
	if err != nil {
		return nil, 0, err
	}
	if i < 0 || i >= t.container.Len() {
		return nil, 0, &section.BoundsError{Op: "entry", Index: i, Len: t.container.Len()}
	}
	return t, i, nil
}
