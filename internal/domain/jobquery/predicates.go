package jobquery

import (
	"strings"

	"github.com/honeycarbs/careerhub/internal/domain"
)

type predicate func(j domain.JobPosting) bool

// predicates returns only the filters spec activates
func predicates(spec domain.FilterSpec) []predicate {
	var out []predicate

	if spec.SearchTerm != "" {
		term := strings.ToLower(spec.SearchTerm)
		out = append(out, func(j domain.JobPosting) bool {
			return containsFold(j.Title, term) ||
				containsFold(j.Company, term) ||
				containsFold(j.Description, term)
		})
	}

	if spec.Location != "" {
		loc := strings.ToLower(spec.Location)
		out = append(out, func(j domain.JobPosting) bool {
			return containsFold(j.Location, loc)
		})
	}

	if spec.Industry != "" {
		industry := spec.Industry
		out = append(out, func(j domain.JobPosting) bool {
			return j.Industry == industry
		})
	}

	if window, ok := BucketWindow(spec.DatePosted); ok {
		out = append(out, func(j domain.JobPosting) bool {
			return ParseAge(j.PostedAt) <= window
		})
	}

	if levels := lowerNonBlank(spec.ExperienceLevels); len(levels) > 0 {
		out = append(out, func(j domain.JobPosting) bool {
			for _, tag := range j.Tags {
				for _, level := range levels {
					if containsFold(tag, level) {
						return true
					}
				}
			}
			return false
		})
	}

	if types := nonBlank(spec.JobTypes); len(types) > 0 {
		out = append(out, func(j domain.JobPosting) bool {
			for _, t := range types {
				if strings.EqualFold(j.Type, t) {
					return true
				}
			}
			return false
		})
	}

	if spec.SalaryRange.Active() {
		lo := float64(spec.SalaryRange.MinK) * 1000
		hi := float64(spec.SalaryRange.MaxK) * 1000
		out = append(out, func(j domain.JobPosting) bool {
			avg, ok := ParseSalary(j.Salary)
			return ok && avg >= lo && avg <= hi
		})
	}

	return out
}

// Matches reports whether j passes every active filter of spec
func Matches(j domain.JobPosting, spec domain.FilterSpec) bool {
	return matchAll(j, predicates(spec))
}

func matchAll(j domain.JobPosting, preds []predicate) bool {
	for _, p := range preds {
		if !p(j) {
			return false
		}
	}
	return true
}

// containsFold expects needle to be lower-cased already
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerNonBlank(in []string) []string {
	out := nonBlank(in)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}
