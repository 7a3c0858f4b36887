// Package suggest produces short plain-text bullet suggestions for a resume
// entry. Suggestions are merged into an entry's rich text by the section
// container; this package only produces the strings.
package suggest

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
)

const (
	// MaxSuggestions caps how many suggestions one request returns.
	MaxSuggestions = 8

	// DefaultCount is how many suggestions a prompt asks for.
	DefaultCount = 5

	promptFile  = "suggestions.json"
	fallbackKey = "default"
)

// Generator turns a prompt into a list of suggestion strings.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
}

// LLMGenerator asks an llm.Client for suggestions.
type LLMGenerator struct {
	client llm.Client
	tier   llm.ModelTier
	max    int
	logger zerolog.Logger
}

// Option configures an LLMGenerator.
type Option func(*LLMGenerator)

// WithTier overrides the model tier used for generation.
func WithTier(tier llm.ModelTier) Option {
	return func(g *LLMGenerator) { g.tier = tier }
}

// WithMax overrides MaxSuggestions.
func WithMax(n int) Option {
	return func(g *LLMGenerator) {
		if n > 0 {
			g.max = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *LLMGenerator) { g.logger = logger }
}

// NewLLMGenerator creates a generator backed by client.
func NewLLMGenerator(client llm.Client, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{
		client: client,
		tier:   llm.TierLite,
		max:    MaxSuggestions,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends prompt to the model and returns the cleaned suggestions.
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) ([]string, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &GenerationError{Message: "prompt is empty"}
	}

	raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		g.logger.Warn().Err(err).Str("model", g.client.GetModel(g.tier)).Msg("suggestion request failed")
		return nil, &GenerationError{Message: "model request failed", Cause: err}
	}

	items, err := ParseSuggestions(raw)
	if err != nil {
		g.logger.Warn().Err(err).Int("bytes", len(raw)).Msg("unparseable suggestion reply")
		return nil, err
	}

	out := Clean(items, g.max)
	g.logger.Debug().Int("received", len(items)).Int("kept", len(out)).Msg("suggestions generated")
	return out, nil
}

// ParseSuggestions decodes a model reply that is either a JSON array of
// strings or an object with a "suggestions" array.
func ParseSuggestions(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(llm.CleanJSONBlock(raw))
	if cleaned == "" {
		return nil, &GenerationError{Message: "empty reply"}
	}

	var list []string
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &list); err != nil {
			return nil, &GenerationError{Message: "reply is not a list of strings", Cause: err}
		}
		return list, nil
	}

	var wrapped struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
		return nil, &GenerationError{Message: "reply is not valid JSON", Cause: err}
	}
	if wrapped.Suggestions == nil {
		return nil, &GenerationError{Message: `reply has no "suggestions" field`}
	}
	return wrapped.Suggestions, nil
}

// Clean trims items, drops blanks and case-insensitive duplicates, strips
// one leading list marker, and keeps at most limit entries. A limit of zero or
// less means no cap.
func Clean(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = stripMarker(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var listMarkers = []string{"- ", "• ", "* ", "•"}

// stripMarker removes a single list marker such as "- " or "• ". A "*" only
// counts as a marker when a space follows, so "**Led** team" stays bold.
func stripMarker(item string) string {
	for _, m := range listMarkers {
		if rest, ok := strings.CutPrefix(item, m); ok {
			return strings.TrimSpace(rest)
		}
	}
	return item
}

// PromptFor builds the generation prompt for an entry of the named section.
// Sections without a dedicated prompt use the default one.
func PromptFor(section, title string, existing []string) (string, error) {
	template, err := prompts.GetOr(promptFile, section, fallbackKey)
	if err != nil {
		return "", err
	}

	existingText := "(none)"
	if len(existing) > 0 {
		var sb strings.Builder
		for _, e := range existing {
			sb.WriteString("- ")
			sb.WriteString(e)
			sb.WriteString("\n")
		}
		existingText = strings.TrimRight(sb.String(), "\n")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "(untitled)"
	}

	return prompts.Format(template, map[string]string{
		"Section":  section,
		"Title":    title,
		"Existing": existingText,
		"Count":    strconv.Itoa(DefaultCount),
	}), nil
}

// GenerateAll runs gen over every prompt with at most limit requests in
// flight. Results are returned in prompt order. The first failure cancels the
// remaining requests and is returned.
func GenerateAll(ctx context.Context, gen Generator, reqs []string, limit int) ([][]string, error) {
	results := make([][]string, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, prompt := range reqs {
		g.Go(func() error {
			out, err := gen.Generate(gctx, prompt)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
