package enums

import "fmt"

// ActionType enumerates the toggleable stances a user can hold on a target.
type ActionType string

const (
	ActionTypeUpvote    ActionType = "upvote"
	ActionTypeDownvote  ActionType = "downvote"
	ActionTypeSubscribe ActionType = "subscribe"
)

var validActionTypes = []ActionType{
	ActionTypeUpvote,
	ActionTypeDownvote,
	ActionTypeSubscribe,
}

// IsValid checks whether the given type matches the canonical enum.
func (a ActionType) IsValid() bool {
	for _, candidate := range validActionTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActionType converts raw strings into ActionType.
func ParseActionType(value string) (ActionType, error) {
	for _, candidate := range validActionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action type %q", value)
}

// ActionTypes returns the canonical set, used for count aggregation.
func ActionTypes() []ActionType {
	out := make([]ActionType, len(validActionTypes))
	copy(out, validActionTypes)
	return out
}
