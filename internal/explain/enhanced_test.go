package explain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-matcher/internal/career"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	block   bool
	prompts []string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func (s *stubGenerator) Provider() string { return "stub" }
func (s *stubGenerator) Model() string    { return "stub-model" }

func TestEnhancedUsesRemoteText(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{text: "A strong fit for this analyst role."}
	e := NewEnhanced(gen, zap.NewNop(), Options{RatePerSecond: -1})

	exp, err := e.Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)

	heuristic, err := Heuristic{}.Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)

	assert.Equal(t, "A strong fit for this analyst role.", exp.Text)
	assert.Equal(t, SourceRemote, exp.Source)
	assert.Equal(t, heuristic.Strengths, exp.Strengths)
	assert.Equal(t, heuristic.Improvements, exp.Improvements)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "- Title: Data Analyst")
	assert.Contains(t, gen.prompts[0], "Match Score: 80.0%")
}

func TestEnhancedFallsBackToHeuristic(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	gen := &stubGenerator{err: errors.New("dial tcp: connection refused")}
	e := NewEnhanced(gen, zap.New(core), Options{RatePerSecond: -1})

	exp, err := e.Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)

	heuristic, err := Heuristic{}.Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)
	assert.Equal(t, heuristic, exp)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "remote explanation failed, using heuristic", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "stub", ctx["ai_provider"])
	assert.Equal(t, int64(7), ctx["job_id"])
}

func TestEnhancedTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{block: true}
	e := NewEnhanced(gen, zap.NewNop(), Options{Timeout: 20 * time.Millisecond, RatePerSecond: -1})

	start := time.Now()
	exp, err := e.Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, SourceHeuristic, exp.Source)
}

func TestEnhancedWithoutGenerator(t *testing.T) {
	t.Parallel()

	exp, err := NewEnhanced(nil, nil, Options{}).Explain(context.Background(), dataAnalystInput())
	require.NoError(t, err)
	assert.Equal(t, SourceHeuristic, exp.Source)
}

func TestEnhancedClampsTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTimeout, NewEnhanced(nil, nil, Options{Timeout: time.Hour}).timeout)
	assert.Equal(t, time.Second, NewEnhanced(nil, nil, Options{Timeout: time.Second}).timeout)
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	in := dataAnalystInput()
	in.Candidate.PreferredTrack = career.TrackUnknown
	in.Candidate.ExperienceLevel = career.ExperienceUnknown
	in.Job.Description = strings.Repeat("д", 250)

	prompt := BuildPrompt(in)

	assert.True(t, strings.HasPrefix(prompt, "<s>[INST]"))
	assert.True(t, strings.HasSuffix(prompt, "[/INST]"))
	assert.Contains(t, prompt, "- Skills: Python, SQL")
	assert.Contains(t, prompt, "- Experience Level: Not specified")
	assert.Contains(t, prompt, "- Preferred Track: Not specified")
	assert.Contains(t, prompt, "- Required Skills: Python, SQL, Docker")
	assert.Contains(t, prompt, "- Description: "+strings.Repeat("д", 200)+"\n")
	assert.NotContains(t, prompt, "{{")
	assert.Empty(t, BuildPrompt(nil))
}
