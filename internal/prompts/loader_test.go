package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SectionPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("suggestions.json", "internship")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Title}}")
	assert.Contains(t, prompt, "{{.Existing}}")
	assert.Contains(t, prompt, `"suggestions"`)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("suggestions.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetOr_FallsBack(t *testing.T) {
	ClearCache()

	fallback, err := Get("suggestions.json", "default")
	require.NoError(t, err)

	prompt, err := GetOr("suggestions.json", "volunteering", "default")
	require.NoError(t, err)
	assert.Equal(t, fallback, prompt)

	prompt, err = GetOr("suggestions.json", "certificate", "default")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Certificate:")

	_, err = GetOr("suggestions.json", "a", "b")
	assert.Error(t, err)
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("suggestions.json", "other"))
	})
}

func TestFormat(t *testing.T) {
	template := "Write about {{.Title}} avoiding {{.Existing}}"
	result := Format(template, map[string]string{
		"Title":    "Data Intern",
		"Existing": "- Built dashboards",
	})
	assert.Equal(t, "Write about Data Intern avoiding - Built dashboards", result)
}

func TestFormat_MissingKeyLeavesPlaceholder(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
	assert.Equal(t, "No placeholders here", Format("No placeholders here", map[string]string{"Key": "Value"}))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("suggestions.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"certificate", "default", "internship", "other"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get("suggestions.json", "default")
	require.NoError(t, err)
	second, err := Get("suggestions.json", "default")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
