package explain

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/career-matcher/internal/ai"
	"github.com/spigell/career-matcher/internal/logger"
	"github.com/spigell/career-matcher/internal/utils"
)

const (
	DefaultTimeout = 30 * time.Second
	maxTimeout     = 30 * time.Second

	defaultRate  = rate.Limit(1)
	defaultBurst = 2

	defaultMaxLogLength = 200
)

type Options struct {
	Timeout time.Duration
	// RatePerSecond limits remote calls. Zero uses the default, a negative value disables limiting.
	RatePerSecond float64
	Burst         int
	MaxLogLength  int
}

// Enhanced asks a remote model for the explanation text and falls back to the
// heuristic on any failure. Strengths and improvements always come from the heuristic.
type Enhanced struct {
	base      Heuristic
	generator ai.Generator
	limiter   *rate.Limiter
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// NewEnhanced wraps generator with the heuristic fallback. A nil generator always uses the heuristic.
func NewEnhanced(generator ai.Generator, log *zap.Logger, opts Options) *Enhanced {
	timeout := opts.Timeout
	if timeout <= 0 || timeout > maxTimeout {
		timeout = DefaultTimeout
	}

	limit, burst := defaultRate, defaultBurst
	switch {
	case opts.RatePerSecond < 0:
		limit = rate.Inf
	case opts.RatePerSecond > 0:
		limit = rate.Limit(opts.RatePerSecond)
	}
	if opts.Burst > 0 {
		burst = opts.Burst
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	if generator != nil {
		log = logger.WithProvider(log, generator.Provider(), generator.Model())
	}

	return &Enhanced{
		generator: generator,
		limiter:   rate.NewLimiter(limit, burst),
		timeout:   timeout,
		maxLogLen: maxLogLen,
		logger:    logger.With(log),
	}
}

func (e *Enhanced) Explain(ctx context.Context, in *Input) (*Explanation, error) {
	fallback, err := e.base.Explain(ctx, in)
	if err != nil {
		return nil, err
	}
	if e.generator == nil {
		return fallback, nil
	}

	log := e.logger.With(logger.JobFields(in.Job)...)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.limiter.Wait(callCtx); err != nil {
		log.Warn("remote explanation skipped, using heuristic", zap.Error(err))
		return fallback, nil
	}

	prompt := BuildPrompt(in)
	log.Debug("remote explanation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	text, err := e.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		log.Warn("remote explanation failed, using heuristic", zap.Error(err))
		return fallback, nil
	}

	log.Debug("remote explanation response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	enhanced := *fallback
	enhanced.Text = text
	enhanced.Source = SourceRemote

	return &enhanced, nil
}
