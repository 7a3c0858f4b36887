package section

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{"certificate", "internship", "other"}, reg.Names())

	for _, s := range reg.All() {
		body, ok := s.BodyField()
		require.True(t, ok, s.Name)
		assert.Equal(t, richtext.PolicyToggle, body.Policy, s.Name)
		assert.NotEmpty(t, s.TitleField().Key, s.Name)
	}
}

func TestLoadSchemas_Defaults(t *testing.T) {
	reg, err := LoadSchemas(strings.NewReader(`
sections:
  - name: projects
    fields:
      - {key: projectTitles, role: title}
      - {key: projectNotes, role: body, kind: richtext}
      - {key: projectLinks}
`))
	require.NoError(t, err)

	s, ok := reg.Get("projects")
	require.True(t, ok)
	assert.Equal(t, KindText, s.Fields[0].Kind)
	assert.Equal(t, richtext.PolicyToggle, s.Fields[1].Policy)
	assert.Equal(t, RoleDetail, s.Fields[2].Role)
}

func TestLoadSchemas_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no title field",
			yaml: "sections:\n  - name: a\n    fields:\n      - {key: x, role: body}\n",
			want: "exactly one title field",
		},
		{
			name: "duplicate key",
			yaml: "sections:\n  - name: a\n    fields:\n      - {key: x, role: title}\n      - {key: x}\n",
			want: "duplicate field key",
		},
		{
			name: "key shared across sections",
			yaml: "sections:\n  - name: a\n    fields:\n      - {key: x, role: title}\n  - name: b\n    fields:\n      - {key: x, role: title}\n",
			want: "already used by section",
		},
		{
			name: "bad policy",
			yaml: "sections:\n  - name: a\n    fields:\n      - {key: x, role: title}\n      - {key: y, kind: richtext, policy: sometimes}\n",
			want: "unknown merge policy",
		},
		{
			name: "unknown yaml field",
			yaml: "sections:\n  - name: a\n    colour: red\n",
			want: "failed to parse schema file",
		},
		{
			name: "empty file",
			yaml: "sections: []\n",
			want: "defines no sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchemas(strings.NewReader(tt.yaml))
			require.Error(t, err)
			var schemaErr *SchemaError
			assert.ErrorAs(t, err, &schemaErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
