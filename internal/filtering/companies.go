package filtering

import (
	"context"
	"strings"

	"github.com/spigell/career-matcher/internal/career"
)

type companiesFilter struct {
	companies map[string]struct{}
}

// NewExcludedCompanies creates a filter that removes jobs posted by the configured companies.
// Company names are compared case-insensitively.
func NewExcludedCompanies(companies []string) Filter {
	set := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			set[c] = struct{}{}
		}
	}
	return &companiesFilter{companies: set}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(string) { f.companies = nil }

func (f *companiesFilter) IsEnabled() bool { return true }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, jobs *career.Jobs) (*career.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.companies) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	dropped := jobs.Keep(func(job career.JobPosting) bool {
		_, excluded := f.companies[strings.ToLower(strings.TrimSpace(job.Company))]
		return !excluded
	})

	return jobs, Step{Initial: initial, Dropped: len(dropped), Left: jobs.Len()}, nil
}
