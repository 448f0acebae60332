// Package recommend ties data access, scoring and explanations together.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/explain"
	"github.com/spigell/career-matcher/internal/logger"
	"github.com/spigell/career-matcher/internal/matching"
	"github.com/spigell/career-matcher/internal/store"
)

var ErrRoleRequired = errors.New("target role is required")

type Config struct {
	Concurrency       int `mapstructure:"concurrency" validate:"gte=1"`
	JobsLimit         int `mapstructure:"jobs-limit" validate:"gte=1"`
	ResourcesFetch    int `mapstructure:"resources-fetch" validate:"gte=1"`
	ResourcesLimit    int `mapstructure:"resources-limit" validate:"gte=1"`
	RoleJobsLimit     int `mapstructure:"role-jobs-limit" validate:"gte=1"`
	GapResourcesLimit int `mapstructure:"gap-resources-limit" validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		Concurrency:       4,
		JobsLimit:         20,
		ResourcesFetch:    50,
		ResourcesLimit:    10,
		RoleJobsLimit:     5,
		GapResourcesLimit: 10,
	}
}

type MatchAnalysis struct {
	Job                 career.JobPosting `json:"job"`
	MatchScore          float64           `json:"match_score"`
	SkillOverlap        float64           `json:"skill_overlap"`
	ExperienceAlignment float64           `json:"experience_alignment"`
	TrackAlignment      float64           `json:"track_alignment"`
	MatchedSkills       []string          `json:"matched_skills"`
	MissingSkills       []string          `json:"missing_skills"`
	Explanation         string            `json:"match_explanation"`
	ExplanationSource   string            `json:"explanation_source"`
	Strengths           []string          `json:"strengths"`
	ImprovementAreas    []string          `json:"improvement_areas"`
}

type Service struct {
	source    store.Source
	explainer explain.Provider
	logger    *zap.Logger
	cfg       Config
}

// New creates the recommendation service. Zero config values fall back to DefaultConfig
// and a nil explainer to the heuristic one.
func New(source store.Source, explainer explain.Provider, log *zap.Logger, cfg Config) *Service {
	if explainer == nil {
		explainer = explain.Heuristic{}
	}

	defaults := DefaultConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	if cfg.JobsLimit <= 0 {
		cfg.JobsLimit = defaults.JobsLimit
	}
	if cfg.ResourcesFetch <= 0 {
		cfg.ResourcesFetch = defaults.ResourcesFetch
	}
	if cfg.ResourcesLimit <= 0 {
		cfg.ResourcesLimit = defaults.ResourcesLimit
	}
	if cfg.RoleJobsLimit <= 0 {
		cfg.RoleJobsLimit = defaults.RoleJobsLimit
	}
	if cfg.GapResourcesLimit <= 0 {
		cfg.GapResourcesLimit = defaults.GapResourcesLimit
	}

	return &Service{
		source:    source,
		explainer: explainer,
		logger:    logger.With(log),
		cfg:       cfg,
	}
}

// Score computes the match analysis for one candidate and job.
func (s *Service) Score(ctx context.Context, candidate *career.CandidateProfile, job *career.JobPosting) (*MatchAnalysis, error) {
	breakdown := matching.Score(candidate, job)

	exp, err := s.explainer.Explain(ctx, &explain.Input{Candidate: candidate, Job: job, Scores: breakdown})
	if err != nil {
		return nil, fmt.Errorf("explain job %d: %w", job.ID, err)
	}

	return &MatchAnalysis{
		Job:                 *job,
		MatchScore:          breakdown.MatchScore,
		SkillOverlap:        breakdown.SkillOverlap,
		ExperienceAlignment: breakdown.ExperienceAlignment,
		TrackAlignment:      breakdown.TrackAlignment,
		MatchedSkills:       breakdown.Matched,
		MissingSkills:       breakdown.Missing,
		Explanation:         exp.Text,
		ExplanationSource:   exp.Source,
		Strengths:           exp.Strengths,
		ImprovementAreas:    exp.Improvements,
	}, nil
}

// RankJobs scores jobs concurrently and returns them best first.
// Jobs with equal scores keep their input order regardless of completion order.
func (s *Service) RankJobs(ctx context.Context, candidate *career.CandidateProfile, jobs []career.JobPosting) ([]MatchAnalysis, error) {
	results := make([]MatchAnalysis, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i := range jobs {
		g.Go(func() error {
			analysis, err := s.Score(gctx, candidate, &jobs[i])
			if err != nil {
				return err
			}
			results[i] = *analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results, nil
}
