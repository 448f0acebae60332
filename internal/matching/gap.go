package matching

import (
	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/skills"
)

type GapResult struct {
	RequiredSkills  []string `json:"required_skills"`
	MatchingSkills  []string `json:"matching_skills"`
	SkillGaps       []string `json:"skill_gaps"`
	MatchPercentage float64  `json:"match_percentage"`
}

// AggregateRequired returns the union of required skills over jobs.
// The first spelling seen wins.
func AggregateRequired(jobs []career.JobPosting) []string {
	all := skills.New()
	for _, job := range jobs {
		all.Merge(skills.New(job.RequiredSkills...))
	}
	return all.Items()
}

// AnalyzeGap splits required skills into the ones the candidate has and the missing ones.
// Without requirements the match percentage is 0, not 100: there is nothing to compare with.
func AnalyzeGap(candidateSkills, requiredSkills []string) GapResult {
	have := skills.New(candidateSkills...)
	required := skills.New(requiredSkills...)
	matching := required.Intersect(have)

	result := GapResult{
		RequiredSkills: required.Items(),
		MatchingSkills: matching.Items(),
		SkillGaps:      required.Difference(have).Items(),
	}
	if required.Len() > 0 {
		result.MatchPercentage = float64(matching.Len()) / float64(required.Len()) * 100
	}

	return result
}
