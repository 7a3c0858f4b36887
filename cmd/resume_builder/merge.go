package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/richtext"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Apply a suggestion to rich-text HTML",
	Long: `Merge suggestion text into editor HTML the same way a suggestion click does
and print the resulting HTML. The input is read from --in, or stdin when --in is "-".`,
	RunE: runMerge,
}

var (
	mergeInput  string
	mergeHTML   string
	mergeText   string
	mergePolicy string
	mergeStatus bool
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeInput, "in", "i", "", `Path to an HTML file, or "-" for stdin`)
	mergeCmd.Flags().StringVar(&mergeHTML, "html", "", "HTML to merge into (alternative to --in)")
	mergeCmd.Flags().StringVarP(&mergeText, "text", "t", "", "Suggestion text (required)")
	mergeCmd.Flags().StringVarP(&mergePolicy, "policy", "p", string(richtext.PolicyToggle), "Merge policy: toggle or additive")
	mergeCmd.Flags().BoolVar(&mergeStatus, "status", false, "Also print whether the suggestion is selected afterwards")

	_ = mergeCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	if mergeInput != "" && mergeHTML != "" {
		return fmt.Errorf("cannot use --in with --html")
	}

	policy, err := richtext.ParsePolicy(mergePolicy)
	if err != nil {
		return err
	}

	current := mergeHTML
	if mergeInput != "" {
		data, err := readInput(cmd, mergeInput)
		if err != nil {
			return err
		}
		current = string(data)
	}

	merged, err := richtext.Merge(current, mergeText, policy)
	if err != nil {
		return err
	}

	selected, err := richtext.IsSelected(merged, mergeText)
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMerge(current, merged, mergeText, selected)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, merged)
	if mergeStatus {
		fmt.Fprintf(out, "selected: %t\n", selected)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
