package matching

import (
	"math"

	"github.com/spigell/career-matcher/internal/skills"
)

// ExtraSkillsBonusCap limits the bonus a candidate earns for knowing more skills than required.
const ExtraSkillsBonusCap = 10.0

// SkillOverlap returns the share of required skills the candidate has, in percent.
// A job without requirements is fully satisfied.
func SkillOverlap(candidate, required []string) float64 {
	return overlap(skills.New(candidate...), skills.New(required...))
}

func overlap(have, required *skills.Set) float64 {
	if required.Len() == 0 {
		return maxScore
	}

	req := float64(required.Len())
	score := float64(required.Intersect(have).Len()) / req * 100

	if extra := have.Len() - required.Len(); extra > 0 {
		score += math.Min(ExtraSkillsBonusCap, float64(extra)/req*10)
	}

	return math.Min(score, maxScore)
}
