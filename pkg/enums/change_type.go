package enums

import "fmt"

// ChangeType classifies a tracking history entry.
type ChangeType string

const (
	ChangeTypeStatus   ChangeType = "status_change"
	ChangeTypeLocation ChangeType = "location_change"
	ChangeTypeManual   ChangeType = "manual_update"
)

var validChangeTypes = []ChangeType{
	ChangeTypeStatus,
	ChangeTypeLocation,
	ChangeTypeManual,
}

// String implements fmt.Stringer.
func (c ChangeType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChangeType.
func (c ChangeType) IsValid() bool {
	for _, candidate := range validChangeTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChangeType converts raw input into a ChangeType.
func ParseChangeType(value string) (ChangeType, error) {
	for _, candidate := range validChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change type %q", value)
}
