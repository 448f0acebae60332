// Package career holds the records the matching engine consumes: candidate profiles,
// job postings and learning resources. Values are read-only for the engine.
package career

import (
	"github.com/google/uuid"
)

type CandidateProfile struct {
	ID              uuid.UUID       `json:"id" mapstructure:"id" validate:"required"`
	FullName        string          `json:"full_name,omitempty" mapstructure:"full_name"`
	Skills          []string        `json:"skills" mapstructure:"skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty" mapstructure:"experience_level"`
	PreferredTrack  CareerTrack     `json:"preferred_track,omitempty" mapstructure:"preferred_track"`
	TargetRoles     []string        `json:"target_roles,omitempty" mapstructure:"target_roles"`
}

type JobPosting struct {
	ID              int             `json:"id" mapstructure:"id" validate:"gt=0"`
	Title           string          `json:"job_title" mapstructure:"job_title" validate:"required"`
	Company         string          `json:"company,omitempty" mapstructure:"company"`
	Location        string          `json:"location,omitempty" mapstructure:"location"`
	Description     string          `json:"job_description,omitempty" mapstructure:"job_description"`
	RequiredSkills  []string        `json:"required_skills" mapstructure:"required_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level" mapstructure:"experience_level"`
	JobType         string          `json:"job_type,omitempty" mapstructure:"job_type"`
}

type LearningResource struct {
	ID            int      `json:"id" mapstructure:"id" validate:"gt=0"`
	Title         string   `json:"title" mapstructure:"title" validate:"required"`
	Platform      string   `json:"platform,omitempty" mapstructure:"platform"`
	URL           string   `json:"url,omitempty" mapstructure:"url" validate:"omitempty,url"`
	RelatedSkills []string `json:"related_skills" mapstructure:"related_skills"`
	Cost          string   `json:"cost,omitempty" mapstructure:"cost" validate:"omitempty,oneof=free paid"`
}

// Application is a tracked application of a candidate to a job.
type Application struct {
	UserID uuid.UUID `json:"user_id" mapstructure:"user_id"`
	JobID  int       `json:"job_id" mapstructure:"job_id" validate:"gt=0"`
	Status string    `json:"status,omitempty" mapstructure:"status"`
}
