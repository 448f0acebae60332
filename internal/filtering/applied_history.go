package filtering

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
)

const (
	AppliedHistoryName = "applied_history"

	forceFlagSetMsg = "force flag is set"
)

// AppliedJobsLister returns IDs of jobs the user has already applied to.
type AppliedJobsLister interface {
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]int, error)
}

type appliedHistoryFilter struct {
	deps   *AppliedHistoryDeps
	userID uuid.UUID
	ignore bool
	reason string
}

type AppliedHistoryDeps struct {
	Applications AppliedJobsLister
	Logger       *zap.Logger
}

type AppliedHistoryConfig struct {
	UserID uuid.UUID
	Ignore bool
}

// NewAppliedHistory creates a filter that removes jobs found in the user's application history.
func NewAppliedHistory(cfg *AppliedHistoryConfig, deps *AppliedHistoryDeps) Filter {
	f := &appliedHistoryFilter{deps: deps}
	if cfg != nil {
		f.userID = cfg.UserID
		f.ignore = cfg.Ignore
	}
	return f
}

func (f *appliedHistoryFilter) Name() string { return AppliedHistoryName }

func (f *appliedHistoryFilter) Disable(reason string) {
	f.ignore = true
	f.reason = reason
}

func (f *appliedHistoryFilter) IsEnabled() bool { return true }

func (f *appliedHistoryFilter) Validate() error {
	if f.deps == nil || f.deps.Applications == nil {
		return errors.New("applications source is required")
	}

	if f.deps.Logger == nil {
		return errors.New("logger is required")
	}

	if !f.ignore && f.userID == uuid.Nil {
		return errors.New("user id is required")
	}

	return nil
}

func (f *appliedHistoryFilter) Apply(ctx context.Context, jobs *career.Jobs) (*career.Jobs, Step, error) {
	initial := jobs.Len()
	if f.ignore {
		f.deps.Logger.Info("keeping already applied jobs", zap.String("reason", forceFlagSetMsg))
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	applied, err := f.deps.Applications.AppliedJobIDs(ctx, f.userID)
	if err != nil {
		return jobs, Step{}, fmt.Errorf("get applied jobs: %w", err)
	}

	excluded := jobs.Exclude(applied)
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding jobs based on application history",
			zap.Ints("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *appliedHistoryFilter) Status() Status {
	details := map[string]string{
		"exclude_applied": strconv.FormatBool(!f.ignore),
	}
	reason := f.reason
	if f.ignore && reason == "" {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: true, Reason: reason, Details: details}
}
