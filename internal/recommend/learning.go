package recommend

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/logger"
	"github.com/spigell/career-matcher/internal/matching"
)

type SkillGapReport struct {
	UserSkills []string `json:"user_skills"`
	TargetRole string   `json:"target_role"`
	matching.GapResult
	RecommendedResources []career.LearningResource `json:"recommended_resources"`
}

// SkillGap compares the candidate with the skills required by jobs matching role.
// An empty role falls back to the candidate's first target role.
func (s *Service) SkillGap(ctx context.Context, userID uuid.UUID, role string) (*SkillGapReport, error) {
	candidate, err := s.source.Candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	role = strings.TrimSpace(role)
	if role == "" && len(candidate.TargetRoles) > 0 {
		role = strings.TrimSpace(candidate.TargetRoles[0])
	}
	if role == "" {
		return nil, ErrRoleRequired
	}

	jobs, err := s.source.JobsByRole(ctx, role, s.cfg.RoleJobsLimit)
	if err != nil {
		return nil, err
	}

	gap := matching.AnalyzeGap(candidate.Skills, matching.AggregateRequired(jobs))

	resources := []career.LearningResource{}
	if len(gap.SkillGaps) > 0 {
		resources, err = s.source.ResourcesTeaching(ctx, gap.SkillGaps, s.cfg.GapResourcesLimit)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("skill gap analysed",
		append(logger.CandidateFields(candidate),
			zap.String("target_role", role),
			zap.Int("jobs", len(jobs)),
			zap.Int("gaps", len(gap.SkillGaps)),
			zap.Float64("match_percentage", gap.MatchPercentage),
		)...,
	)

	return &SkillGapReport{
		UserSkills:           candidate.Skills,
		TargetRole:           role,
		GapResult:            gap,
		RecommendedResources: resources,
	}, nil
}

// LearningRecommendations ranks resources by how many new skills they teach the candidate.
func (s *Service) LearningRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]matching.ResourceRecommendation, error) {
	candidate, err := s.source.Candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	resources, err := s.source.Resources(ctx, s.cfg.ResourcesFetch)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.ResourcesLimit
	}

	ranked := matching.RankResources(candidate.Skills, resources)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.logger.Info("learning recommendations ready",
		append(logger.CandidateFields(candidate),
			zap.Int("fetched", len(resources)),
			zap.Int("returned", len(ranked)),
		)...,
	)

	return ranked, nil
}
