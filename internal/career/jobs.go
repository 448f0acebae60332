package career

import (
	"encoding/json"
	"os"
	"slices"
)

type Jobs struct {
	Items []JobPosting
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id int) *JobPosting {
	for i := range j.Items {
		if j.Items[i].ID == id {
			return &j.Items[i]
		}
	}
	return nil
}

func (j *Jobs) IDs() []int {
	ids := make([]int, 0, len(j.Items))
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// Exclude removes jobs with the given IDs and returns the removed IDs.
// Unlike a swap-remove, the relative order of the remaining jobs is kept.
func (j *Jobs) Exclude(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}

	var excluded []int
	kept := j.Items[:0]
	for _, job := range j.Items {
		if slices.Contains(ids, job.ID) {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// Keep retains only jobs accepted by fn and returns the IDs of dropped jobs.
func (j *Jobs) Keep(fn func(JobPosting) bool) []int {
	var dropped []int
	kept := j.Items[:0]
	for _, job := range j.Items {
		if !fn(job) {
			dropped = append(dropped, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return dropped
}

// ExcludedJobs is the on-disk list of job IDs a user never wants recommended.
type ExcludedJobs struct {
	IDs []int `json:"ids"`
}

func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedJobs) ToFile(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Append adds ids that are not listed yet, keeping the existing order.
func (e *ExcludedJobs) Append(ids []int) {
	for _, id := range ids {
		if !slices.Contains(e.IDs, id) {
			e.IDs = append(e.IDs, id)
		}
	}
}
