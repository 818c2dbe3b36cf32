package notifications

import (
	"strings"

	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
)

const (
	placeholderInitiatorName = "{initiatorName}"
	placeholderEntityTitle   = "{entityTitle}"

	// fallbackInitiatorName stands in when the initiator's profile cannot
	// be loaded; dispatch must not abort over a missing display name.
	fallbackInitiatorName = "Someone"
)

// Template pairs a static title with a description template containing
// {initiatorName} and {entityTitle} placeholders.
type Template struct {
	Title       string
	Description string
}

// Placeholders carries the substitution values for one rendering.
type Placeholders struct {
	InitiatorName string
	EntityTitle   string
}

// TemplateRegistry is the immutable eventType → template table. It is built
// once at startup and injected, so tests can substitute their own entries.
type TemplateRegistry struct {
	templates map[enums.EventType]Template
}

// NewTemplateRegistry returns the registry with the production templates.
func NewTemplateRegistry() *TemplateRegistry {
	return NewTemplateRegistryFrom(map[enums.EventType]Template{
		enums.EventIdeaCreated: {
			Title:       "New Idea",
			Description: "{initiatorName} submitted an Idea: {entityTitle}",
		},
		enums.EventIdeaCommented: {
			Title:       "New Comment",
			Description: "{initiatorName} commented on the Idea: {entityTitle}",
		},
		enums.EventChallengeCommented: {
			Title:       "New Comment",
			Description: "{initiatorName} commented on the Challenge: {entityTitle}",
		},
		enums.EventIdeaUpvoted: {
			Title:       "New Upvote",
			Description: "{initiatorName} upvoted the Idea: {entityTitle}",
		},
		enums.EventChallengeUpvoted: {
			Title:       "New Upvote",
			Description: "{initiatorName} upvoted the Challenge: {entityTitle}",
		},
	})
}

// NewTemplateRegistryFrom builds a registry around the provided table. The
// map is copied so later mutation of the argument cannot leak in.
func NewTemplateRegistryFrom(templates map[enums.EventType]Template) *TemplateRegistry {
	copied := make(map[enums.EventType]Template, len(templates))
	for event, tmpl := range templates {
		copied[event] = tmpl
	}
	return &TemplateRegistry{templates: copied}
}

// Render resolves the template for the event and substitutes the placeholders.
// An unregistered event is a programming error and fails loudly rather than
// being swallowed like other dispatch-time problems.
func (r *TemplateRegistry) Render(event enums.EventType, values Placeholders) (title, description string, err error) {
	tmpl, ok := r.templates[event]
	if !ok {
		return "", "", pkgerrors.New(pkgerrors.CodeInternal, "no notification template registered for event "+string(event))
	}
	return tmpl.Title, renderDescription(tmpl.Description, values), nil
}

func renderDescription(tmpl string, values Placeholders) string {
	name := values.InitiatorName
	if name == "" {
		name = fallbackInitiatorName
	}
	out := strings.ReplaceAll(tmpl, placeholderInitiatorName, name)
	if values.EntityTitle != "" {
		return strings.ReplaceAll(out, placeholderEntityTitle, "'"+values.EntityTitle+"'")
	}
	out = strings.ReplaceAll(out, placeholderEntityTitle, "")
	return strings.TrimSuffix(strings.TrimSpace(out), ":")
}
