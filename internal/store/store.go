// Package store loads candidates, jobs and learning resources for the matcher.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spigell/career-matcher/internal/career"
)

const (
	KindPostgres = "postgres"
	KindFile     = "file"
)

var ErrNotFound = errors.New("not found")

type JobQuery struct {
	// ExperienceLevel restricts jobs to one level when known.
	ExperienceLevel career.ExperienceLevel
	Limit           int
}

// Source is the data access layer used by the recommendation service.
type Source interface {
	Candidate(ctx context.Context, id uuid.UUID) (*career.CandidateProfile, error)
	Job(ctx context.Context, id int) (*career.JobPosting, error)
	Jobs(ctx context.Context, q JobQuery) ([]career.JobPosting, error)
	// JobsByRole returns jobs whose title contains role, ignoring case.
	JobsByRole(ctx context.Context, role string, limit int) ([]career.JobPosting, error)
	Resources(ctx context.Context, limit int) ([]career.LearningResource, error)
	// ResourcesTeaching returns resources that teach at least one of skills, ignoring case.
	ResourcesTeaching(ctx context.Context, skills []string, limit int) ([]career.LearningResource, error)
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]int, error)
	Close()
}

type Config struct {
	Kind        string
	DatabaseURL string
	DatasetPath string
}

func Open(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindPostgres:
		return Connect(ctx, cfg.DatabaseURL)
	case KindFile:
		return LoadFile(cfg.DatasetPath)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
