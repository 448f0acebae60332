package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/career-matcher/internal/career"
)

func TestAnalyzeGap(t *testing.T) {
	t.Parallel()

	result := AnalyzeGap([]string{"python", "docker"}, []string{"Python", "React", "Docker"})

	assert.Equal(t, []string{"Python", "React", "Docker"}, result.RequiredSkills)
	assert.Equal(t, []string{"Python", "Docker"}, result.MatchingSkills)
	assert.Equal(t, []string{"React"}, result.SkillGaps)
	assert.InDelta(t, 66.67, result.MatchPercentage, 0.01)
}

func TestAnalyzeGapWithoutRequirements(t *testing.T) {
	t.Parallel()

	result := AnalyzeGap([]string{"Go"}, nil)

	assert.Zero(t, result.MatchPercentage)
	assert.Empty(t, result.RequiredSkills)
	assert.Empty(t, result.MatchingSkills)
	assert.Empty(t, result.SkillGaps)
	// The scorer treats the same input as fully satisfied.
	assert.Equal(t, 100.0, SkillOverlap([]string{"Go"}, nil))
}

func TestAggregateRequired(t *testing.T) {
	t.Parallel()

	jobs := []career.JobPosting{
		{ID: 1, RequiredSkills: []string{"Python", "SQL"}},
		{ID: 2, RequiredSkills: []string{"sql", "Docker"}},
		{ID: 3},
		{ID: 4, RequiredSkills: []string{"PYTHON", "Airflow"}},
	}

	assert.Equal(t, []string{"Python", "SQL", "Docker", "Airflow"}, AggregateRequired(jobs))
	assert.Empty(t, AggregateRequired(nil))
}
