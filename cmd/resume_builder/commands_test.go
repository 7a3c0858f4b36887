package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMergeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		want     []string
		notWant  []string
		errorStr string
	}{
		{
			name: "toggle adds missing item",
			args: []string{"merge", "--html", "<ul><li>A</li></ul>", "--text", "B", "--status"},
			want: []string{"<li>A</li>", "<li>B</li>", "selected: true"},
		},
		{
			name:    "toggle removes present item",
			args:    []string{"merge", "--html", "<ul><li>A</li><li>B</li></ul>", "--text", "B", "--status"},
			want:    []string{"<li>A</li>", "selected: false"},
			notWant: []string{"<li>B</li>"},
		},
		{
			name: "additive keeps present item",
			args: []string{"merge", "--html", "<ul><li>B</li></ul>", "--text", "B", "--policy", "additive", "--status"},
			want: []string{"<li>B</li>", "selected: true"},
		},
		{
			name:  "reads stdin",
			args:  []string{"merge", "--in", "-", "--text", "Shipped"},
			stdin: "<p>Intro</p>",
			want:  []string{"<p>Intro</p>", "<li>Shipped</li>"},
		},
		{
			name: "verbose prints merge summary",
			args: []string{"merge", "--html", "<ul><li>A</li></ul>", "--text", "B", "-v"},
			want: []string{"SUGGESTION MERGE", "• B"},
		},
		{
			name:     "unknown policy",
			args:     []string{"merge", "--html", "", "--text", "B", "--policy", "replace"},
			errorStr: "replace",
		},
		{
			name:     "missing text",
			args:     []string{"merge", "--html", "<p>x</p>"},
			errorStr: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			if tt.errorStr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorStr)
				return
			}
			require.NoError(t, err, out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestPrefsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	out, err := execute(t, "", "prefs", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "banner_dismissed=false")

	out, err = execute(t, "", "prefs", "set", "banner_dismissed", "true", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "banner_dismissed=true")

	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = execute(t, "", "prefs", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "banner_dismissed=true")
	assert.Contains(t, out, "profile_nudge_dismissed=false")

	out, err = execute(t, "", "prefs", "--file", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "PREFERENCES")
	assert.Contains(t, out, "✓ banner_dismissed")

	_, err = execute(t, "", "prefs", "set", "dark_mode", "true", "--file", path)
	assert.Error(t, err)

	_, err = execute(t, "", "prefs", "set", "banner_dismissed", "maybe", "--file", path)
	assert.Error(t, err)
}

func TestSuggestCommand_FlagsValidation(t *testing.T) {
	_, err := execute(t, "", "suggest", "--title", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = execute(t, "", "suggest", "--section", "hobbies", "--title", "Chess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestServeCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

// resetFlags restores every flag to its default so one Execute does not leak
// into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
