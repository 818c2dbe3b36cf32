package enums

import "fmt"

// TargetType identifies which pipeline entity an action or comment refers to.
type TargetType string

const (
	TargetTypeChallenge TargetType = "challenge"
	TargetTypeIdea      TargetType = "idea"
)

var validTargetTypes = []TargetType{
	TargetTypeChallenge,
	TargetTypeIdea,
}

// IsValid checks whether the given type matches the canonical enum.
func (t TargetType) IsValid() bool {
	for _, candidate := range validTargetTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTargetType converts raw strings into TargetType. The legacy frontend
// codes CH and ID are accepted for wire compatibility.
func ParseTargetType(value string) (TargetType, error) {
	switch value {
	case "CH":
		return TargetTypeChallenge, nil
	case "ID":
		return TargetTypeIdea, nil
	}
	for _, candidate := range validTargetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid target type %q", value)
}
