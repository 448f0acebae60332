package career

import (
	"fmt"
	"strings"
)

// ExperienceLevel is the seniority tier of a candidate or the one a job asks for.
// Levels are ordered: Fresher < Junior < Mid.
type ExperienceLevel int

const (
	ExperienceUnknown ExperienceLevel = iota
	Fresher
	Junior
	Mid
)

// ParseExperienceLevel converts loosely cased text into a level.
// An empty string is a valid "not specified" value and yields ExperienceUnknown.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ExperienceUnknown, nil
	case "fresher":
		return Fresher, nil
	case "junior":
		return Junior, nil
	case "mid":
		return Mid, nil
	default:
		return ExperienceUnknown, fmt.Errorf("unknown experience level: %q", s)
	}
}

func (l ExperienceLevel) String() string {
	switch l {
	case Fresher:
		return "fresher"
	case Junior:
		return "junior"
	case Mid:
		return "mid"
	default:
		return ""
	}
}

// Known reports whether the level carries information.
func (l ExperienceLevel) Known() bool {
	return l != ExperienceUnknown
}

func (l ExperienceLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *ExperienceLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseExperienceLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
