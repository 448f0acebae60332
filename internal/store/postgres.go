package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spigell/career-matcher/internal/career"
)

const (
	jobColumns = `id, job_title, COALESCE(company, ''), COALESCE(location, ''),
		COALESCE(job_description, ''), COALESCE(required_skills, '{}'),
		COALESCE(experience_level::text, ''), COALESCE(job_type::text, '')`

	resourceColumns = `id, title, COALESCE(platform, ''), COALESCE(url, ''),
		COALESCE(related_skills, '{}'), COALESCE(cost::text, '')`
)

// Postgres reads the platform schema (users, jobs, learning_resources, application_tracking).
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) Candidate(ctx context.Context, id uuid.UUID) (*career.CandidateProfile, error) {
	var (
		c            career.CandidateProfile
		level, track string
	)

	err := p.pool.QueryRow(ctx,
		`SELECT id, COALESCE(full_name, ''), COALESCE(skills, '{}'),
		        COALESCE(experience_level::text, ''), COALESCE(preferred_track::text, ''),
		        COALESCE(target_roles, '{}')
		 FROM users WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.FullName, &c.Skills, &level, &track, &c.TargetRoles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if c.ExperienceLevel, err = career.ParseExperienceLevel(level); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", id, err)
	}
	if c.PreferredTrack, err = career.ParseCareerTrack(track); err != nil {
		return nil, fmt.Errorf("candidate %s: %w", id, err)
	}

	return &c, nil
}

func (p *Postgres) Job(ctx context.Context, id int) (*career.JobPosting, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return &jobs[0], nil
}

func (p *Postgres) Jobs(ctx context.Context, q JobQuery) ([]career.JobPosting, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE $1::text = '' OR experience_level::text = $1
		 ORDER BY id
		 LIMIT $2`,
		q.ExperienceLevel.String(), sqlLimit(q.Limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return collectJobs(rows)
}

func (p *Postgres) JobsByRole(ctx context.Context, role string, limit int) ([]career.JobPosting, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE LOWER(job_title) LIKE LOWER($1)
		 ORDER BY id
		 LIMIT $2`,
		"%"+strings.TrimSpace(role)+"%", sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by role: %w", err)
	}

	return collectJobs(rows)
}

func (p *Postgres) Resources(ctx context.Context, limit int) ([]career.LearningResource, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+resourceColumns+` FROM learning_resources ORDER BY id LIMIT $1`,
		sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	return collectResources(rows)
}

func (p *Postgres) ResourcesTeaching(ctx context.Context, skills []string, limit int) ([]career.LearningResource, error) {
	if len(skills) == 0 {
		return []career.LearningResource{}, nil
	}

	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(s)))
	}

	rows, err := p.pool.Query(ctx,
		`SELECT `+resourceColumns+`
		 FROM learning_resources
		 WHERE EXISTS (SELECT 1 FROM unnest(related_skills) AS s WHERE LOWER(s) = ANY($1))
		 ORDER BY id
		 LIMIT $2`,
		lowered, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources by skills: %w", err)
	}

	return collectResources(rows)
}

func (p *Postgres) AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]int, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT job_id FROM application_tracking WHERE user_id = $1 ORDER BY job_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return ids, nil
}

// sqlLimit maps a non-positive limit to NULL, which Postgres treats as no limit.
func sqlLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func collectJobs(rows pgx.Rows) ([]career.JobPosting, error) {
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.JobPosting, error) {
		var (
			j     career.JobPosting
			level string
		)
		if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
			&j.RequiredSkills, &level, &j.JobType); err != nil {
			return j, err
		}

		parsed, err := career.ParseExperienceLevel(level)
		if err != nil {
			return j, fmt.Errorf("job %d: %w", j.ID, err)
		}
		j.ExperienceLevel = parsed

		return j, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

func collectResources(rows pgx.Rows) ([]career.LearningResource, error) {
	resources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (career.LearningResource, error) {
		var r career.LearningResource
		err := row.Scan(&r.ID, &r.Title, &r.Platform, &r.URL, &r.RelatedSkills, &r.Cost)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan resources: %w", err)
	}
	return resources, nil
}
