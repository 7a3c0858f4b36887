package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/types"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": s.templates.All()})
}

// handleSelectTemplate sets the draft's template. Premium templates without an
// entitlement answer 402 with the payment modal flag.
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request, owner string) {
	var req types.SelectTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := types.Validate(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, types.DescribeValidationError(err))
		return
	}

	d, err := s.loadDraft(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.templates.Select(d, req.TemplateID, s.entitled(owner)); err != nil {
		s.templateError(w, r, err)
		return
	}
	if err := s.saveDraft(r, d); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, d)
}

// templateError writes the payment modal response for PaymentRequiredError
// and falls back to fail for anything else.
func (s *Server) templateError(w http.ResponseWriter, r *http.Request, err error) {
	var payment *form.PaymentRequiredError
	if !errors.As(err, &payment) {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusPaymentRequired, types.PaymentRequiredResponse{
		Error:      payment.Error(),
		TemplateID: payment.TemplateID,
		ShowModal:  true,
	})
}

// handleCompletion reports profile completion. The nudge stays hidden once the
// owner has dismissed it.
func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request, owner string) {
	d, err := s.loadDraft(r, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c := form.ComputeCompletion(d, s.registry, s.nudgeAt)

	show := c.ShouldNudge
	if show {
		dismissed, err := s.preferenceSet(r.Context(), owner, settings.ProfileNudgeDismissed)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner", owner).Msg("loading nudge preference")
		}
		show = !dismissed
	}

	s.jsonResponse(w, http.StatusOK, types.CompletionResponse{
		Percent:        c.Percent,
		Completed:      c.Completed,
		Missing:        c.Missing,
		TemplateChosen: c.TemplateChosen,
		ShowNudge:      show,
	})
}

// preferenceSet reads one preference. It is false when preferences are disabled.
func (s *Server) preferenceSet(ctx context.Context, owner, key string) (bool, error) {
	if s.preferences == nil {
		return false, nil
	}
	store := settings.NewStore(s.preferences(owner))
	if err := store.Load(ctx); err != nil {
		return false, err
	}
	return store.Bool(key)
}
