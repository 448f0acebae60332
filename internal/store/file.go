package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/skills"
)

// Dataset is the content of a dataset file.
type Dataset struct {
	Candidates   []career.CandidateProfile `mapstructure:"candidates" validate:"dive"`
	Jobs         []career.JobPosting       `mapstructure:"jobs" validate:"dive"`
	Resources    []career.LearningResource `mapstructure:"resources" validate:"dive"`
	Applications []career.Application      `mapstructure:"applications" validate:"dive"`
}

// File serves a dataset kept in memory. Any format viper reads is accepted.
type File struct {
	data Dataset
}

func LoadFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("dataset path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}

	var data Dataset
	if err := decode(v.AllSettings(), &data); err != nil {
		return nil, fmt.Errorf("decoding dataset %q: %w", path, err)
	}

	return NewFile(data)
}

// NewFile validates the dataset and wraps it.
func NewFile(data Dataset) (*File, error) {
	if err := validator.New().Struct(data); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &File{data: data}, nil
}

func decode(input any, out *Dataset) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func (f *File) Close() {}

func (f *File) Candidate(_ context.Context, id uuid.UUID) (*career.CandidateProfile, error) {
	for i := range f.data.Candidates {
		if f.data.Candidates[i].ID == id {
			c := f.data.Candidates[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
}

func (f *File) Job(_ context.Context, id int) (*career.JobPosting, error) {
	jobs := &career.Jobs{Items: f.data.Jobs}
	if job := jobs.FindByID(id); job != nil {
		j := *job
		return &j, nil
	}
	return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
}

func (f *File) Jobs(_ context.Context, q JobQuery) ([]career.JobPosting, error) {
	return takeJobs(f.data.Jobs, q.Limit, func(j career.JobPosting) bool {
		return !q.ExperienceLevel.Known() || j.ExperienceLevel == q.ExperienceLevel
	}), nil
}

func (f *File) JobsByRole(_ context.Context, role string, limit int) ([]career.JobPosting, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	return takeJobs(f.data.Jobs, limit, func(j career.JobPosting) bool {
		return strings.Contains(strings.ToLower(j.Title), role)
	}), nil
}

func (f *File) Resources(_ context.Context, limit int) ([]career.LearningResource, error) {
	return takeResources(f.data.Resources, limit, func(career.LearningResource) bool { return true }), nil
}

func (f *File) ResourcesTeaching(_ context.Context, wanted []string, limit int) ([]career.LearningResource, error) {
	set := skills.New(wanted...)
	return takeResources(f.data.Resources, limit, func(r career.LearningResource) bool {
		return slices.ContainsFunc(r.RelatedSkills, set.Contains)
	}), nil
}

func (f *File) AppliedJobIDs(_ context.Context, userID uuid.UUID) ([]int, error) {
	ids := []int{}
	for _, a := range f.data.Applications {
		if a.UserID == userID {
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}

func takeJobs(all []career.JobPosting, limit int, keep func(career.JobPosting) bool) []career.JobPosting {
	result := []career.JobPosting{}
	for _, j := range all {
		if limit > 0 && len(result) == limit {
			break
		}
		if keep(j) {
			result = append(result, j)
		}
	}
	return result
}

func takeResources(all []career.LearningResource, limit int, keep func(career.LearningResource) bool) []career.LearningResource {
	result := []career.LearningResource{}
	for _, r := range all {
		if limit > 0 && len(result) == limit {
			break
		}
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}
