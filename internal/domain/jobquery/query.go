// Package jobquery filters, sorts and paginates an in-memory job collection.
//
// Query is pure: it never mutates its input, holds no state between calls
// and never fails. Malformed postings are silently included or excluded
// according to the rules of each filter.
package jobquery

import (
	"cmp"
	"slices"
	"time"

	"github.com/honeycarbs/careerhub/internal/domain"
)

type ranked struct {
	job domain.JobPosting
	age time.Duration
}

// Query runs the filter, sort and pagination stages in that order
func Query(all []domain.JobPosting, spec domain.FilterSpec) domain.QueryResult {
	preds := predicates(spec)

	filtered := make([]ranked, 0, len(all))
	for _, j := range all {
		if matchAll(j, preds) {
			filtered = append(filtered, ranked{job: j, age: ParseAge(j.PostedAt)})
		}
	}

	sortRanked(filtered, spec.SortBy)

	return paginate(filtered, spec.Page, spec.PageSize)
}

func sortRanked(jobs []ranked, sortBy string) {
	switch sortBy {
	case domain.SortNewest:
		slices.SortStableFunc(jobs, byAge)
	case domain.SortRelevant:
		slices.SortStableFunc(jobs, func(a, b ranked) int {
			if a.job.Featured != b.job.Featured {
				if a.job.Featured {
					return -1
				}
				return 1
			}
			return byAge(a, b)
		})
	}
}

func byAge(a, b ranked) int {
	return cmp.Compare(a.age, b.age)
}

func paginate(jobs []ranked, page, pageSize int) domain.QueryResult {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	total := len(jobs)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	res := domain.QueryResult{
		Results:    []domain.JobPosting{},
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
	if page < 1 || page > totalPages {
		return res
	}

	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)

	res.Results = make([]domain.JobPosting, 0, end-start)
	for _, r := range jobs[start:end] {
		res.Results = append(res.Results, r.job)
	}
	return res
}
