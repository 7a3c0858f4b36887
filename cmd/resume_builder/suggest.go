package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate bullet suggestions for section entries",
	Long: `Ask the configured model for bullet suggestions for one or more entry titles
of a section and print them as JSON, one result per title.`,
	RunE: runSuggest,
}

var (
	suggestSection  string
	suggestTitles   []string
	suggestExisting []string
	suggestLimit    int
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestSection, "section", "s", "", "Section name, e.g. internship (required)")
	suggestCmd.Flags().StringArrayVarP(&suggestTitles, "title", "t", nil, "Entry title; repeat for several entries (required)")
	suggestCmd.Flags().StringArrayVar(&suggestExisting, "existing", nil, "Bullet already present in the entry; repeatable")
	suggestCmd.Flags().IntVar(&suggestLimit, "concurrency", 0, "Maximum requests in flight (default from config)")

	_ = suggestCmd.MarkFlagRequired("section")
	_ = suggestCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(suggestCmd)
}

type suggestResult struct {
	Title       string   `json:"title"`
	Suggestions []string `json:"suggestions"`
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	if _, ok := registry.Get(suggestSection); !ok {
		return fmt.Errorf("unknown section %q (known: %v)", suggestSection, registry.Names())
	}

	ctx := cmdContext(cmd)
	logger := logging.Console(cfg.Verbose)

	gen, closeGen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeGen()
	if gen == nil {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY or OPENAI_API_KEY to match LLM_PROVIDER)")
	}

	prompts := make([]string, len(suggestTitles))
	for i, title := range suggestTitles {
		p, err := suggest.PromptFor(suggestSection, title, suggestExisting)
		if err != nil {
			return err
		}
		prompts[i] = p
	}

	limit := suggestLimit
	if limit <= 0 {
		limit = cfg.SuggestionConcurrency
	}
	results, err := suggest.GenerateAll(ctx, gen, prompts, limit)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	out := make([]suggestResult, len(results))
	for i, r := range results {
		out[i] = suggestResult{Title: suggestTitles[i], Suggestions: r}
		if cfg.Verbose {
			printer.PrintSuggestions(suggestSection, suggestTitles[i], r)
		}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
