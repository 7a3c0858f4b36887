package form

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/section"
)

// DefaultNudgeThreshold is the completion percentage below which the
// profile-completion banner is shown.
const DefaultNudgeThreshold = 80

// Completion summarizes how much of a draft has been filled in.
type Completion struct {
	Percent        int      `json:"percent"`
	Completed      []string `json:"completed"`
	Missing        []string `json:"missing"`
	TemplateChosen bool     `json:"template_chosen"`
	ShouldNudge    bool     `json:"should_nudge"`
}

// ComputeCompletion counts a section as complete when at least one entry has both
// a title and non-empty body content. Choosing a template counts as one more step.
func ComputeCompletion(d *Draft, reg *section.Registry, threshold int) Completion {
	c := Completion{Completed: []string{}, Missing: []string{}}
	schemas := reg.All()
	steps := len(schemas) + 1
	done := 0

	for _, schema := range schemas {
		if sectionComplete(d, schema) {
			c.Completed = append(c.Completed, schema.Name)
			done++
		} else {
			c.Missing = append(c.Missing, schema.Name)
		}
	}

	if d.TemplateID != "" {
		c.TemplateChosen = true
		done++
	}

	c.Percent = done * 100 / steps
	c.ShouldNudge = c.Percent < threshold
	return c
}

func sectionComplete(d *Draft, schema *section.Schema) bool {
	titles := d.Fields[schema.TitleField().Key]
	body, hasBody := schema.BodyField()
	for i, title := range titles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		if !hasBody {
			return true
		}
		bodies := d.Fields[body.Key]
		if i < len(bodies) && hasContent(bodies[i]) {
			return true
		}
	}
	return false
}

func hasContent(html string) bool {
	doc, err := richtext.Parse(html)
	if err != nil {
		return strings.TrimSpace(html) != ""
	}
	for _, b := range doc.Blocks {
		switch b.Kind {
		case richtext.KindList:
			for _, it := range b.Items {
				if strings.TrimSpace(it.Text) != "" {
					return true
				}
			}
		case richtext.KindText:
			if strings.TrimSpace(b.Text) != "" {
				return true
			}
		default:
			if strings.TrimSpace(b.HTML) != "" {
				return true
			}
		}
	}
	return false
}
