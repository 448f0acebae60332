package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
)

const (
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
	FieldJobID      = "job_id"
	FieldJobTitle   = "job_title"
	FieldUserID     = "user_id"
	FieldMatchScore = "match_score"
)

// Strings turns key/value pairs into string fields. Pairs with a blank key or
// value are dropped, a trailing key without a value too.
func Strings(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, value := strings.TrimSpace(pairs[i]), strings.TrimSpace(pairs[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// With is logger.With that accepts a nil logger.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

func ProviderFields(provider, model string) []zap.Field {
	return Strings(FieldProvider, provider, FieldModel, model)
}

func WithProvider(logger *zap.Logger, provider, model string) *zap.Logger {
	return With(logger, ProviderFields(provider, model)...)
}

// JobFields describes a job posting in log entries.
func JobFields(job *career.JobPosting) []zap.Field {
	if job == nil {
		return nil
	}

	fields := []zap.Field{zap.Int(FieldJobID, job.ID)}
	return append(fields, Strings(
		FieldJobTitle, job.Title,
		"job_experience", job.ExperienceLevel.String(),
	)...)
}

func CandidateFields(candidate *career.CandidateProfile) []zap.Field {
	if candidate == nil {
		return nil
	}

	fields := []zap.Field{
		zap.Stringer(FieldUserID, candidate.ID),
		zap.Int("skills", len(candidate.Skills)),
	}
	return append(fields, Strings(
		"experience", candidate.ExperienceLevel.String(),
		"track", candidate.PreferredTrack.String(),
	)...)
}
