package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/section"
)

// DraftSummary is the list view of a draft.
type DraftSummary struct {
	ID         uuid.UUID `json:"id"`
	TemplateID string    `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SectionView is a section's cards plus its active index.
type SectionView struct {
	Section string         `json:"section"`
	Label   string         `json:"label"`
	Active  int            `json:"active"`
	Cards   []section.Card `json:"cards"`
}

// Suggestion is one generated suggestion and whether the entry already has it.
type Suggestion struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// SuggestionsResponse lists suggestions for one entry field.
type SuggestionsResponse struct {
	Field       string       `json:"field"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ApplySuggestionResponse is the field's HTML after a merge.
type ApplySuggestionResponse struct {
	Field    string `json:"field"`
	HTML     string `json:"html"`
	Selected bool   `json:"selected"`
}

// CompletionResponse reports profile completion and whether to nudge.
type CompletionResponse struct {
	Percent        int      `json:"percent"`
	Completed      []string `json:"completed"`
	Missing        []string `json:"missing"`
	TemplateChosen bool     `json:"template_chosen"`
	ShowNudge      bool     `json:"show_nudge"`
}

// PaymentRequiredResponse tells the client to open the payment modal.
type PaymentRequiredResponse struct {
	Error      string `json:"error"`
	TemplateID string `json:"template_id"`
	ShowModal  bool   `json:"show_modal"`
}
