package matching

import "github.com/spigell/career-matcher/internal/career"

// ExperienceAlignment rates how close a candidate's level is to the level a job asks for.
// Stepping up is rated higher than being overqualified by the same distance.
func ExperienceAlignment(candidate, job career.ExperienceLevel) float64 {
	if !candidate.Known() {
		return NeutralScore
	}
	if candidate == job {
		return maxScore
	}

	switch candidate {
	case career.Fresher:
		switch job {
		case career.Junior:
			return 80
		case career.Mid:
			return 60
		}
	case career.Junior:
		switch job {
		case career.Mid:
			return 80
		case career.Fresher:
			return 70
		}
	case career.Mid:
		switch job {
		case career.Junior:
			return 70
		case career.Fresher:
			return 40
		}
	}

	return NeutralScore
}
