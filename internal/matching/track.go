package matching

import (
	"strings"

	"github.com/spigell/career-matcher/internal/career"
)

var trackKeywords = map[career.CareerTrack][]string{
	career.WebDevelopment: {"frontend", "backend", "full stack", "web", "react", "node"},
	career.Data:           {"data", "analyst", "scientist", "ml", "machine learning"},
	career.Design:         {"designer", "ui", "ux", "graphic"},
	career.Marketing:      {"marketing", "seo", "content", "social"},
}

// TrackAlignment checks the job title for keywords of the preferred track.
// Keywords match as substrings of the lower-cased title.
func TrackAlignment(track career.CareerTrack, jobTitle string) float64 {
	keywords, ok := trackKeywords[track]
	if !ok {
		return NeutralScore
	}

	title := strings.ToLower(jobTitle)
	for _, keyword := range keywords {
		if strings.Contains(title, keyword) {
			return maxScore
		}
	}

	return NeutralScore
}
