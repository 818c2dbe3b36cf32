package notifications

import (
	"testing"

	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
)

func TestTemplateRegistry_RenderSubstitutesPlaceholders(t *testing.T) {
	registry := NewTemplateRegistryFrom(map[enums.EventType]Template{
		enums.EventIdeaCreated: {
			Title:       "New Idea",
			Description: "{initiatorName} submitted an Idea: {entityTitle}",
		},
	})

	title, description, err := registry.Render(enums.EventIdeaCreated, Placeholders{
		InitiatorName: "John Doe",
		EntityTitle:   "My Cool Idea",
	})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if title != "New Idea" {
		t.Fatalf("unexpected title %q", title)
	}
	if description != "John Doe submitted an Idea: 'My Cool Idea'" {
		t.Fatalf("unexpected description %q", description)
	}
}

func TestTemplateRegistry_RenderMissingInitiatorName(t *testing.T) {
	registry := NewTemplateRegistry()
	_, description, err := registry.Render(enums.EventChallengeUpvoted, Placeholders{EntityTitle: "Green Energy"})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if description != "Someone upvoted the Challenge: 'Green Energy'" {
		t.Fatalf("unexpected description %q", description)
	}
}

func TestTemplateRegistry_RenderOmitsAbsentEntityTitle(t *testing.T) {
	registry := NewTemplateRegistry()
	_, description, err := registry.Render(enums.EventIdeaCommented, Placeholders{InitiatorName: "Jane"})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if description != "Jane commented on the Idea" {
		t.Fatalf("unexpected description %q", description)
	}
}

func TestTemplateRegistry_RenderUnknownEventFails(t *testing.T) {
	registry := NewTemplateRegistry()
	_, _, err := registry.Render(enums.EventType("made_up"), Placeholders{})
	if err == nil {
		t.Fatal("expected error for unregistered event")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestTemplateRegistry_CoversAllEvents(t *testing.T) {
	registry := NewTemplateRegistry()
	for _, event := range []enums.EventType{
		enums.EventIdeaCreated,
		enums.EventIdeaCommented,
		enums.EventChallengeCommented,
		enums.EventIdeaUpvoted,
		enums.EventChallengeUpvoted,
	} {
		if _, _, err := registry.Render(event, Placeholders{InitiatorName: "x", EntityTitle: "y"}); err != nil {
			t.Fatalf("no template for %s: %v", event, err)
		}
	}
}
