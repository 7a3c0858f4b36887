package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/types"
)

// loadPreferences returns the caller's loaded preference store.
func (s *Server) loadPreferences(r *http.Request, owner string) (*settings.Store, error) {
	if s.preferences == nil {
		return nil, &ErrUnavailable{Feature: "preferences"}
	}
	store := settings.NewStore(s.preferences(owner))
	if err := store.Load(r.Context()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request, owner string) {
	store, err := s.loadPreferences(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	values, err := store.All()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"preferences": values})
}

// handleSetPreference sets one known preference key.
func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request, owner string) {
	var req types.SetPreferenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := types.Validate(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, types.DescribeValidationError(err))
		return
	}

	store, err := s.loadPreferences(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	key := r.PathValue("key")
	if err := store.SetBool(key, *req.Value); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := store.Save(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"key": key, "value": *req.Value})
}
