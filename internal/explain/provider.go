// Package explain turns match scores into a short rationale for the candidate.
package explain

import (
	"context"
	"errors"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/matching"
)

const (
	SourceHeuristic = "heuristic"
	SourceRemote    = "remote"
)

var errNoInput = errors.New("explanation input requires a candidate and a job")

// Provider produces the explanation for one scored candidate and job pair.
type Provider interface {
	Explain(ctx context.Context, in *Input) (*Explanation, error)
}

// Input is one scored candidate and job pair.
type Input struct {
	Candidate *career.CandidateProfile
	Job       *career.JobPosting
	Scores    matching.Breakdown
}

type Explanation struct {
	Text         string   `json:"match_explanation"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvement_areas"`
	// Source tells whether Text came from the local rules or a remote model.
	Source string `json:"explanation_source"`
}

func (in *Input) valid() bool {
	return in != nil && in.Candidate != nil && in.Job != nil
}
