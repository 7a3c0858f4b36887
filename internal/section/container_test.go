package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingForm struct {
	data map[string][]string
}

func (f *recordingForm) UpdateFormData(key string, value []string) {
	if f.data == nil {
		f.data = make(map[string][]string)
	}
	f.data[key] = value
}

func TestContainer_AddRemoveScenario(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {""}}, 0)
	assert.Equal(t, ActiveIndex(0), c.Active())

	active, err := c.Add()
	require.NoError(t, err)
	assert.Equal(t, ActiveIndex(1), active)
	assert.Equal(t, []string{"", ""}, c.Section().Values()["internshipTitles"])

	require.NoError(t, c.Remove(0))
	assert.Equal(t, []string{""}, c.Section().Values()["internshipTitles"])
	assert.Equal(t, ActiveIndex(0), c.Active())
}

func TestContainer_EnsureInitialized(t *testing.T) {
	c := NewContainer(internshipSchema(t), nil, None)
	assert.Equal(t, 0, c.Len())

	assert.True(t, c.EnsureInitialized())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, ActiveIndex(0), c.Active())

	assert.False(t, c.EnsureInitialized(), "second call is a no-op")
	assert.Equal(t, 1, c.Len())
}

func TestContainer_RemoveLastEntryFails(t *testing.T) {
	c := NewContainer(internshipSchema(t), nil, None)
	c.EnsureInitialized()

	err := c.Remove(0)
	var cardErr *CardinalityError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, ActiveIndex(0), c.Active())
}

func TestContainer_NewClampsStoredActive(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"a", "b"}}, 7)
	assert.Equal(t, ActiveIndex(1), c.Active())

	c = NewContainer(internshipSchema(t), nil, 3)
	assert.Equal(t, None, c.Active())
}

func TestContainer_Toggle(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"a", "b"}}, 0)

	require.NoError(t, c.Toggle(1))
	assert.Equal(t, ActiveIndex(1), c.Active())
	require.NoError(t, c.Toggle(1))
	assert.Equal(t, None, c.Active())

	var boundsErr *BoundsError
	assert.ErrorAs(t, c.Toggle(2), &boundsErr)
}

func TestContainer_ApplySuggestionToggles(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"Acme"}}, 0)

	html, selected, err := c.ApplySuggestion("internshipSummaries", 0, "Led team of 5")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Led team of 5</li></ul>", html)
	assert.True(t, selected)

	ok, err := c.IsSelected("internshipSummaries", 0, "Led team of 5")
	require.NoError(t, err)
	assert.True(t, ok)

	html, selected, err = c.ApplySuggestion("internshipSummaries", 0, "Led team of 5")
	require.NoError(t, err)
	assert.Equal(t, "", html)
	assert.False(t, selected)
}

func TestContainer_ApplySuggestionRejectsTextField(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"Acme"}}, 0)

	_, _, err := c.ApplySuggestion("internshipTitles", 0, "x")
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestContainer_SetFieldSanitizesRichText(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"Acme"}}, 0)

	require.NoError(t, c.SetField("internshipSummaries", 0, `<ul><li onclick="x()">Built APIs</li></ul><script>bad()</script>`))
	v, err := c.Section().Value("internshipSummaries", 0)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Built APIs</li></ul>", v)

	require.NoError(t, c.SetField("internshipTitles", 0, "<b>kept as typed</b>"))
	v, _ = c.Section().Value("internshipTitles", 0)
	assert.Equal(t, "<b>kept as typed</b>", v)
}

func TestContainer_CardsAndCommit(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{
		"internshipTitles":    {"Acme", "Globex"},
		"internshipSummaries": {"", "<ul><li>x</li></ul>"},
	}, 1)

	cards := c.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "Acme", cards[0].Title)
	assert.False(t, cards[0].Expanded)
	assert.True(t, cards[1].Expanded)
	assert.True(t, cards[0].CanDelete)

	form := &recordingForm{}
	c.Commit(form)
	assert.Equal(t, []string{"Acme", "Globex"}, form.data["internshipTitles"])
	assert.Equal(t, []string{"", "<ul><li>x</li></ul>"}, form.data["internshipSummaries"])

	require.NoError(t, c.Remove(0))
	cards = c.Cards()
	require.Len(t, cards, 1)
	assert.False(t, cards[0].CanDelete, "delete is disabled on the last entry")
}

func TestContainer_SetRichText(t *testing.T) {
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": {"Intern"}}, 0)

	html, err := c.SetRichText("internshipSummaries", 0, `<ul><li onclick="x()">Shipped</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Shipped</li></ul>", html)

	_, err = c.SetRichText("internshipTitles", 0, "<b>x</b>")
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Intern", c.Section().Values()["internshipTitles"][0])

	_, err = c.SetRichText("internshipSummaries", 4, "x")
	var boundsErr *BoundsError
	require.ErrorAs(t, err, &boundsErr)
}

func TestContainer_AddStopsAtMaxEntries(t *testing.T) {
	titles := make([]string, MaxEntries-1)
	c := NewContainer(internshipSchema(t), map[string][]string{"internshipTitles": titles}, 0)

	active, err := c.Add()
	require.NoError(t, err)
	assert.Equal(t, ActiveIndex(MaxEntries-1), active)

	_, err = c.Add()
	var cardErr *CardinalityError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, MaxEntries, cardErr.Max)
	assert.Contains(t, err.Error(), "at most 50 entries")
	assert.Equal(t, MaxEntries, c.Len())
	assert.Equal(t, ActiveIndex(MaxEntries-1), c.Active(), "active entry unchanged")
}
