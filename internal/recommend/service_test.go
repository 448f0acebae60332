package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/explain"
	"github.com/spigell/career-matcher/internal/store"
)

var analystID = uuid.MustParse("6f1c3c1e-8d4a-4c36-9d55-2f8f3c1b2a10")

func testDataset() store.Dataset {
	return store.Dataset{
		Candidates: []career.CandidateProfile{{
			ID:              analystID,
			Skills:          []string{"Python", "SQL", "Excel"},
			ExperienceLevel: career.Junior,
			PreferredTrack:  career.Data,
			TargetRoles:     []string{"data analyst"},
		}},
		Jobs: []career.JobPosting{
			{ID: 1, Title: "Data Analyst", Company: "Acme", RequiredSkills: []string{"Python", "SQL", "Docker"}, ExperienceLevel: career.Junior},
			{ID: 2, Title: "Frontend Developer", RequiredSkills: []string{"React"}, ExperienceLevel: career.Fresher},
			{ID: 3, Title: "Marketing Assistant", Company: "Globex", RequiredSkills: []string{"SEO", "Excel"}, ExperienceLevel: career.Junior},
			{ID: 4, Title: "Junior Data Analyst", Company: "Umbrella", RequiredSkills: []string{"Excel", "Tableau"}, ExperienceLevel: career.Junior},
			{ID: 5, Title: "Reporting Specialist", RequiredSkills: []string{"excel"}, ExperienceLevel: career.Junior},
		},
		Resources: []career.LearningResource{
			{ID: 1, Title: "SQL for Analysts", RelatedSkills: []string{"SQL"}},
			{ID: 2, Title: "Docker Fundamentals", RelatedSkills: []string{"Docker", "Linux"}},
			{ID: 3, Title: "Tableau", RelatedSkills: []string{"tableau", "Python"}},
		},
		Applications: []career.Application{{UserID: analystID, JobID: 5}},
	}
}

func newTestService(t *testing.T, explainer explain.Provider, cfg Config) *Service {
	t.Helper()

	src, err := store.NewFile(testDataset())
	require.NoError(t, err)

	return New(src, explainer, zap.NewNop(), cfg)
}

type slowExplainer struct {
	delays map[int]time.Duration
	fail   int
}

func (e *slowExplainer) Explain(ctx context.Context, in *explain.Input) (*explain.Explanation, error) {
	if in.Job.ID == e.fail {
		return nil, errors.New("boom")
	}
	time.Sleep(e.delays[in.Job.ID])
	return explain.Heuristic{}.Explain(ctx, in)
}

type failingGenerator struct{}

func (failingGenerator) GenerateContent(context.Context, string) (string, error) {
	return "", errors.New("network unreachable")
}
func (failingGenerator) Provider() string { return "stub" }
func (failingGenerator) Model() string    { return "stub" }

func TestScore(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	candidate := &career.CandidateProfile{Skills: []string{"Python", "SQL"}, ExperienceLevel: career.Junior, PreferredTrack: career.Data}
	job := &career.JobPosting{ID: 9, Title: "Data Analyst", RequiredSkills: []string{"Python", "SQL", "Docker"}, ExperienceLevel: career.Junior}

	analysis, err := s.Score(context.Background(), candidate, job)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, analysis.MatchScore, 1e-9)
	assert.Equal(t, []string{"Python", "SQL"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"Docker"}, analysis.MissingSkills)
	assert.Equal(t, explain.SourceHeuristic, analysis.ExplanationSource)
	assert.Contains(t, analysis.Explanation, "Excellent match!")
	assert.Equal(t, []string{"Learn: Docker"}, analysis.ImprovementAreas)
}

func TestScoreRemoteFailureMatchesHeuristic(t *testing.T) {
	t.Parallel()

	candidate := &career.CandidateProfile{Skills: []string{"Go"}, ExperienceLevel: career.Mid}
	job := &career.JobPosting{ID: 1, Title: "Backend Engineer", RequiredSkills: []string{"Go", "Kafka"}, ExperienceLevel: career.Junior}

	enhanced := newTestService(t, explain.NewEnhanced(failingGenerator{}, zap.NewNop(), explain.Options{RatePerSecond: -1}), Config{})
	plain := newTestService(t, explain.Heuristic{}, Config{})

	got, err := enhanced.Score(context.Background(), candidate, job)
	require.NoError(t, err)
	want, err := plain.Score(context.Background(), candidate, job)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestRankJobsOrderIgnoresCompletionOrder(t *testing.T) {
	t.Parallel()

	jobs := []career.JobPosting{
		{ID: 1, Title: "A", RequiredSkills: []string{"Go", "Rust"}},
		{ID: 2, Title: "B", RequiredSkills: []string{"Go"}},
		{ID: 3, Title: "C", RequiredSkills: []string{"Go", "Rust"}},
		{ID: 4, Title: "D", RequiredSkills: []string{"Java"}},
		{ID: 5, Title: "E", RequiredSkills: []string{"Go"}},
	}
	explainer := &slowExplainer{delays: map[int]time.Duration{1: 30 * time.Millisecond, 2: 20 * time.Millisecond, 3: 0, 5: 10 * time.Millisecond}}
	s := newTestService(t, explainer, Config{Concurrency: 5})

	ranked, err := s.RankJobs(context.Background(), &career.CandidateProfile{Skills: []string{"go"}}, jobs)
	require.NoError(t, err)

	ids := make([]int, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Job.ID)
	}
	assert.Equal(t, []int{2, 5, 1, 3, 4}, ids)
}

func TestRankJobsPropagatesErrors(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &slowExplainer{fail: 2}, Config{Concurrency: 2})
	_, err := s.RankJobs(context.Background(), &career.CandidateProfile{}, []career.JobPosting{{ID: 1}, {ID: 2}})
	require.Error(t, err)
}

func TestRankJobsEmpty(t *testing.T) {
	t.Parallel()

	ranked, err := newTestService(t, nil, Config{}).RankJobs(context.Background(), &career.CandidateProfile{}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRecommendJobs(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	ranked, err := s.RecommendJobs(context.Background(), JobsRequest{UserID: analystID})
	require.NoError(t, err)

	// Fresher job 2 is not fetched and job 5 was already applied to.
	ids := make([]int, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Job.ID)
	}
	assert.Equal(t, []int{1, 4, 3}, ids)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].MatchScore, ranked[i].MatchScore)
	}
}

func TestRecommendJobsOptions(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	ctx := context.Background()

	withApplied, err := s.RecommendJobs(ctx, JobsRequest{UserID: analystID, KeepApplied: true, ExcludeCompanies: []string{"globex"}})
	require.NoError(t, err)
	assert.Len(t, withApplied, 3)
	for _, r := range withApplied {
		assert.NotEqual(t, 3, r.Job.ID)
	}

	limited, err := s.RecommendJobs(ctx, JobsRequest{UserID: analystID, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 1, limited[0].Job.ID)

	strict, err := s.RecommendJobs(ctx, JobsRequest{UserID: analystID, MinScore: 79})
	require.NoError(t, err)
	for _, r := range strict {
		assert.GreaterOrEqual(t, r.MatchScore, 79.0)
	}

	fresher, err := s.RecommendJobs(ctx, JobsRequest{UserID: analystID, ExperienceLevel: career.Fresher})
	require.NoError(t, err)
	require.Len(t, fresher, 1)
	assert.Equal(t, 2, fresher[0].Job.ID)

	_, err = s.RecommendJobs(ctx, JobsRequest{UserID: uuid.New()})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSkillGap(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	report, err := s.SkillGap(context.Background(), analystID, "Data Analyst")
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", report.TargetRole)
	assert.Equal(t, []string{"Python", "SQL", "Docker", "Excel", "Tableau"}, report.RequiredSkills)
	assert.Equal(t, []string{"Python", "SQL", "Excel"}, report.MatchingSkills)
	assert.Equal(t, []string{"Docker", "Tableau"}, report.SkillGaps)
	assert.InDelta(t, 60.0, report.MatchPercentage, 1e-9)

	require.Len(t, report.RecommendedResources, 2)
	assert.Equal(t, 2, report.RecommendedResources[0].ID)
	assert.Equal(t, 3, report.RecommendedResources[1].ID)
}

func TestSkillGapRoleFallbacks(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	report, err := s.SkillGap(context.Background(), analystID, " ")
	require.NoError(t, err)
	assert.Equal(t, "data analyst", report.TargetRole)

	report, err = s.SkillGap(context.Background(), analystID, "astronaut")
	require.NoError(t, err)
	assert.Zero(t, report.MatchPercentage)
	assert.Empty(t, report.SkillGaps)
	assert.Empty(t, report.RecommendedResources)

	ds := testDataset()
	ds.Candidates[0].TargetRoles = nil
	src, err := store.NewFile(ds)
	require.NoError(t, err)
	_, err = New(src, nil, nil, Config{}).SkillGap(context.Background(), analystID, "")
	assert.True(t, errors.Is(err, ErrRoleRequired))
}

func TestLearningRecommendations(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	ranked, err := s.LearningRecommendations(context.Background(), analystID, 0)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].Resource.ID)
	assert.Equal(t, 100.0, ranked[0].RelevanceScore)
	assert.Equal(t, 3, ranked[1].Resource.ID)
	assert.Equal(t, 50.0, ranked[1].RelevanceScore)
	assert.Equal(t, []string{"tableau"}, ranked[1].TargetSkills)

	top, err := s.LearningRecommendations(context.Background(), analystID, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestNewFillsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestService(t, nil, Config{})
	assert.Equal(t, DefaultConfig(), s.cfg)

	s = newTestService(t, nil, Config{GapResourcesLimit: 1, Concurrency: 2})
	assert.Equal(t, 1, s.cfg.GapResourcesLimit)
	assert.Equal(t, 2, s.cfg.Concurrency)

	report, err := s.SkillGap(context.Background(), analystID, "Data Analyst")
	require.NoError(t, err)
	require.Len(t, report.RecommendedResources, 1)
	assert.Equal(t, 2, report.RecommendedResources[0].ID)
}
