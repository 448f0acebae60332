package recommend

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/filtering"
	"github.com/spigell/career-matcher/internal/logger"
	"github.com/spigell/career-matcher/internal/store"
)

type JobsRequest struct {
	UserID uuid.UUID
	// ExperienceLevel overrides the candidate's own level when selecting jobs.
	ExperienceLevel career.ExperienceLevel
	Limit           int
	MinScore        float64

	KeepApplied      bool
	ExcludeFile      string
	ExcludeCompanies []string
}

// RecommendJobs loads jobs at the candidate's level, drops filtered ones and ranks the rest.
func (s *Service) RecommendJobs(ctx context.Context, req JobsRequest) ([]MatchAnalysis, error) {
	candidate, err := s.source.Candidate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	log := s.logger.With(logger.CandidateFields(candidate)...)

	level := req.ExperienceLevel
	if !level.Known() {
		level = candidate.ExperienceLevel
	}

	items, err := s.source.Jobs(ctx, store.JobQuery{ExperienceLevel: level, Limit: s.cfg.JobsLimit})
	if err != nil {
		return nil, err
	}

	jobs, err := filtering.Run(ctx, log, s.filters(req, log), &career.Jobs{Items: items})
	if err != nil {
		return nil, fmt.Errorf("filter jobs: %w", err)
	}

	ranked, err := s.RankJobs(ctx, candidate, jobs.Items)
	if err != nil {
		return nil, err
	}

	result := make([]MatchAnalysis, 0, len(ranked))
	for _, analysis := range ranked {
		if analysis.MatchScore < req.MinScore {
			continue
		}
		if req.Limit > 0 && len(result) == req.Limit {
			break
		}
		result = append(result, analysis)
	}

	log.Info("job recommendations ready",
		zap.Int("fetched", len(items)),
		zap.Int("ranked", len(ranked)),
		zap.Int("returned", len(result)),
	)

	return result, nil
}

func (s *Service) filters(req JobsRequest, log *zap.Logger) []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewAppliedHistory(
			&filtering.AppliedHistoryConfig{UserID: req.UserID},
			&filtering.AppliedHistoryDeps{Applications: s.source, Logger: log},
		),
		filtering.NewExcludeFile(req.ExcludeFile, log),
		filtering.NewExcludedCompanies(req.ExcludeCompanies),
	}

	if req.KeepApplied {
		filtering.DisableByName(steps, filtering.AppliedHistoryName, "keep applied requested")
	}

	log.Debug("prepared filters", zap.Any("filters", filtering.Describe(steps)))

	return steps
}
