package career

import (
	"fmt"
	"strings"
)

// CareerTrack is the specialization path a candidate prefers.
type CareerTrack int

const (
	TrackUnknown CareerTrack = iota
	WebDevelopment
	Data
	Design
	Marketing
)

// ParseCareerTrack accepts snake_case, kebab-case and spaced spellings in any case.
func ParseCareerTrack(s string) (CareerTrack, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	switch normalized {
	case "":
		return TrackUnknown, nil
	case "web_development", "webdevelopment":
		return WebDevelopment, nil
	case "data":
		return Data, nil
	case "design":
		return Design, nil
	case "marketing":
		return Marketing, nil
	default:
		return TrackUnknown, fmt.Errorf("unknown career track: %q", s)
	}
}

func (t CareerTrack) String() string {
	switch t {
	case WebDevelopment:
		return "web_development"
	case Data:
		return "data"
	case Design:
		return "design"
	case Marketing:
		return "marketing"
	default:
		return ""
	}
}

func (t CareerTrack) Known() bool {
	return t != TrackUnknown
}

func (t CareerTrack) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CareerTrack) UnmarshalText(text []byte) error {
	parsed, err := ParseCareerTrack(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
