package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/section"
	"github.com/jonathan/resume-builder/internal/suggest"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleGenerateSuggestions asks the generator for bullets matching the
// entry's title. Each suggestion carries whether the entry already lists it.
func (s *Server) handleGenerateSuggestions(w http.ResponseWriter, r *http.Request, owner string) {
	if s.generator == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "suggestion generation"})
		return
	}

	t, i, err := s.loadEntry(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	schema := t.container.Schema()
	body, ok := schema.BodyField()
	if !ok {
		s.fail(w, r, &section.FieldError{Section: schema.Name, Message: "section has no rich-text body"})
		return
	}

	entry, err := t.container.Section().Entry(i)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	existing, err := listedItems(entry[body.Key])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	prompt, err := suggest.PromptFor(schema.Name, entry[schema.TitleField().Key], existing)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	texts, err := s.generator.Generate(r.Context(), prompt)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := types.SuggestionsResponse{Field: body.Key, Suggestions: make([]types.Suggestion, 0, len(texts))}
	for _, text := range texts {
		selected, err := t.container.IsSelected(body.Key, i, text)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp.Suggestions = append(resp.Suggestions, types.Suggestion{Text: text, Selected: selected})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleApplySuggestion merges a clicked suggestion into the entry's rich text
// using the field's policy.
func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request, owner string) {
	var req types.ApplySuggestionRequest
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
	key := req.Field
	if key == "" {
		schema := t.container.Schema()
		body, ok := schema.BodyField()
		if !ok {
			s.fail(w, r, &section.FieldError{Section: schema.Name, Message: "section has no rich-text body"})
			return
		}
		key = body.Key
	}

	html, selected, err := t.container.ApplySuggestion(key, i, req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.commit(r, t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ApplySuggestionResponse{Field: key, HTML: html, Selected: selected})
}

// listedItems returns the plain text of every list item in html.
func listedItems(html string) ([]string, error) {
	doc, err := richtext.Parse(html)
	if err != nil {
		return nil, err
	}
	items := doc.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out, nil
}
