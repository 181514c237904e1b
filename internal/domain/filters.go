package domain

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Sort modes
const (
	SortNewest   = "newest"
	SortRelevant = "relevant"
)

// Date-posted buckets
const (
	DatePostedAny = "any"
	DatePosted24h = "24h"
	DatePosted7d  = "7d"
	DatePosted14d = "14d"
	DatePosted30d = "30d"
)

// DefaultPageSize applies when a FilterSpec carries no usable page size
const DefaultPageSize = 10

// DefaultSalaryRange is the untouched slider position, in thousands
var DefaultSalaryRange = SalaryRange{MinK: 0, MaxK: 300}

// SalaryRange is an inclusive [MinK, MaxK] range in thousands.
// It encodes as a two-element JSON array.
type SalaryRange struct {
	MinK int
	MaxK int
}

// Active reports whether the range restricts anything
func (r SalaryRange) Active() bool {
	return r != SalaryRange{} && r != DefaultSalaryRange
}

func (r SalaryRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.MinK, r.MaxK})
}

func (r *SalaryRange) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("salary range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("salary range: want 2 values, got %d", len(pair))
	}
	r.MinK, r.MaxK = pair[0], pair[1]
	return nil
}

// FilterSpec is the complete set of filter, sort and page parameters for one query
type FilterSpec struct {
	SearchTerm       string
	Location         string
	Industry         string
	DatePosted       string
	ExperienceLevels []string
	JobTypes         []string
	SalaryRange      SalaryRange
	SortBy           string
	Page             int
	PageSize         int
}

// SavedFilters is the persisted form of a user's filter state.
// Field names match the keys the browser client stores.
type SavedFilters struct {
	JobTypes         []string    `json:"jobTypes"`
	ExperienceLevels []string    `json:"experienceLevels"`
	SalaryRange      SalaryRange `json:"salaryRange"`
	SearchTerm       string      `json:"searchTerm"`
	Industry         string      `json:"industry"`
	Location         string      `json:"location"`
	SortBy           string      `json:"sortBy" validate:"omitempty,oneof=newest relevant"`
	DatePosted       string      `json:"datePosted" validate:"omitempty,oneof=any 24h 7d 14d 30d"`
}

// DefaultSavedFilters is the state of a fresh session
func DefaultSavedFilters() SavedFilters {
	return SavedFilters{
		JobTypes:         []string{},
		ExperienceLevels: []string{},
		SalaryRange:      DefaultSalaryRange,
		SortBy:           SortRelevant,
		DatePosted:       DatePostedAny,
	}
}

// Validate checks enumerated fields and the salary bounds
func (f SavedFilters) Validate() error {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if f.SalaryRange.MinK < 0 || f.SalaryRange.MaxK < f.SalaryRange.MinK {
		return &ValidationError{Msg: fmt.Sprintf("invalid salary range [%d, %d]", f.SalaryRange.MinK, f.SalaryRange.MaxK)}
	}
	return nil
}

// Spec builds a FilterSpec for the requested page
func (f SavedFilters) Spec(page, pageSize int) FilterSpec {
	return FilterSpec{
		SearchTerm:       f.SearchTerm,
		Location:         f.Location,
		Industry:         f.Industry,
		DatePosted:       f.DatePosted,
		ExperienceLevels: cloneStrings(f.ExperienceLevels),
		JobTypes:         cloneStrings(f.JobTypes),
		SalaryRange:      f.SalaryRange,
		SortBy:           f.SortBy,
		Page:             page,
		PageSize:         pageSize,
	}
}

// SavedFiltersFromSpec drops the page fields of spec
func SavedFiltersFromSpec(spec FilterSpec) SavedFilters {
	return SavedFilters{
		JobTypes:         cloneStrings(spec.JobTypes),
		ExperienceLevels: cloneStrings(spec.ExperienceLevels),
		SalaryRange:      spec.SalaryRange,
		SearchTerm:       spec.SearchTerm,
		Industry:         spec.Industry,
		Location:         spec.Location,
		SortBy:           spec.SortBy,
		DatePosted:       spec.DatePosted,
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
