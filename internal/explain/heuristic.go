package explain

import (
	"context"
	"fmt"
	"strings"
)

const (
	maxStrengthSkills = 5
	maxMissingSkills  = 3
)

// Heuristic builds explanations from fixed rules. The same input always gives the same output.
type Heuristic struct{}

func (Heuristic) Explain(_ context.Context, in *Input) (*Explanation, error) {
	if !in.valid() {
		return nil, errNoInput
	}
	return compose(in), nil
}

func compose(in *Input) *Explanation {
	s := in.Scores
	exp := &Explanation{
		Strengths:    []string{},
		Improvements: []string{},
		Source:       SourceHeuristic,
	}
	var parts []string

	if len(s.Matched) > 0 {
		list := strings.Join(head(s.Matched, maxStrengthSkills), ", ")
		exp.Strengths = append(exp.Strengths, "Strong skills match: "+list)
		parts = append(parts, fmt.Sprintf("You have %d of %d required skills (%s)",
			len(s.Matched), len(s.Matched)+len(s.Missing), list))
	}

	if len(s.Missing) > 0 {
		list := strings.Join(head(s.Missing, maxMissingSkills), ", ")
		exp.Improvements = append(exp.Improvements, "Learn: "+list)
		parts = append(parts, "Consider learning: "+list)
	}

	switch {
	case s.ExperienceAlignment >= 80:
		exp.Strengths = append(exp.Strengths, fmt.Sprintf("Experience level (%s) aligns well with this position",
			orDefault(in.Candidate.ExperienceLevel.String(), "your level")))
		parts = append(parts, "Your experience level is a good fit for this role")
	case s.ExperienceAlignment < 60:
		exp.Improvements = append(exp.Improvements, fmt.Sprintf("This role requires %s experience, but you have %s",
			orDefault(in.Job.ExperienceLevel.String(), "unspecified"),
			orDefault(in.Candidate.ExperienceLevel.String(), "different")))
	}

	if s.TrackAlignment >= 80 {
		exp.Strengths = append(exp.Strengths, "This role matches your preferred career track")
		parts = append(parts, "The position aligns with your career interests")
	}

	exp.Text = verdict(s.MatchScore) + " " + strings.Join(parts, ". ")
	return exp
}

func verdict(score float64) string {
	switch {
	case score >= 80:
		return "Excellent match!"
	case score >= 60:
		return "Good match"
	case score >= 40:
		return "Moderate match"
	default:
		return "Limited match"
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
