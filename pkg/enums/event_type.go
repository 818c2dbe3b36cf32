package enums

import "fmt"

// EventType names the engagement events that fan out notifications.
type EventType string

const (
	EventIdeaCreated        EventType = "idea_created"
	EventIdeaCommented      EventType = "idea_commented"
	EventChallengeCommented EventType = "challenge_commented"
	EventIdeaUpvoted        EventType = "idea_upvoted"
	EventChallengeUpvoted   EventType = "challenge_upvoted"
)

var validEventTypes = []EventType{
	EventIdeaCreated,
	EventIdeaCommented,
	EventChallengeCommented,
	EventIdeaUpvoted,
	EventChallengeUpvoted,
}

// IsValid checks whether the given type matches the canonical enum.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw strings into EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

// CommentEventFor returns the comment event matching the commented target.
func CommentEventFor(target TargetType) (EventType, error) {
	switch target {
	case TargetTypeChallenge:
		return EventChallengeCommented, nil
	case TargetTypeIdea:
		return EventIdeaCommented, nil
	}
	return "", fmt.Errorf("no comment event for target type %q", target)
}

// UpvoteEventFor returns the upvote event matching the voted target.
func UpvoteEventFor(target TargetType) (EventType, error) {
	switch target {
	case TargetTypeChallenge:
		return EventChallengeUpvoted, nil
	case TargetTypeIdea:
		return EventIdeaUpvoted, nil
	}
	return "", fmt.Errorf("no upvote event for target type %q", target)
}
