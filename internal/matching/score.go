// Package matching scores candidates against job postings and learning resources.
// Every function here is pure and safe for concurrent use.
package matching

import (
	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/skills"
)

const (
	skillOverlapWeight = 0.6
	experienceWeight   = 0.2
	trackWeight        = 0.2

	// NeutralScore is used whenever a factor cannot be judged.
	NeutralScore = 50.0
	maxScore     = 100.0
)

// Breakdown is the result of scoring one candidate against one job.
type Breakdown struct {
	SkillOverlap        float64
	ExperienceAlignment float64
	TrackAlignment      float64
	MatchScore          float64

	// Matched and Missing use the job's spelling and order.
	Matched []string
	Missing []string
}

// Score computes the weighted match score of candidate against job with its sub-scores
// and the matched and missing skills.
func Score(candidate *career.CandidateProfile, job *career.JobPosting) Breakdown {
	have := skills.New(candidate.Skills...)
	required := skills.New(job.RequiredSkills...)

	b := Breakdown{
		SkillOverlap:        overlap(have, required),
		ExperienceAlignment: ExperienceAlignment(candidate.ExperienceLevel, job.ExperienceLevel),
		TrackAlignment:      TrackAlignment(candidate.PreferredTrack, job.Title),
		Matched:             required.Intersect(have).Items(),
		Missing:             required.Difference(have).Items(),
	}
	b.MatchScore = Combine(b.SkillOverlap, b.ExperienceAlignment, b.TrackAlignment)

	return b
}

// Combine applies the 60/20/20 weighting.
func Combine(overlap, experience, track float64) float64 {
	return skillOverlapWeight*overlap + experienceWeight*experience + trackWeight*track
}
