package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// parseQuery overlays URL parameters on base and builds the page spec.
// List parameters take comma separated values; salaryRange is "min,max".
func parseQuery(q url.Values, base domain.SavedFilters, defaultPageSize int) (domain.FilterSpec, error) {
	f := base
	if q.Has("searchTerm") {
		f.SearchTerm = q.Get("searchTerm")
	}
	if q.Has("location") {
		f.Location = q.Get("location")
	}
	if q.Has("industry") {
		f.Industry = q.Get("industry")
	}
	if q.Has("datePosted") {
		f.DatePosted = q.Get("datePosted")
	}
	if q.Has("sortBy") {
		f.SortBy = q.Get("sortBy")
	}
	if q.Has("experienceLevels") {
		f.ExperienceLevels = splitList(q.Get("experienceLevels"))
	}
	if q.Has("jobTypes") {
		f.JobTypes = splitList(q.Get("jobTypes"))
	}
	if q.Has("salaryRange") {
		r, err := parseSalaryRange(q.Get("salaryRange"))
		if err != nil {
			return domain.FilterSpec{}, err
		}
		f.SalaryRange = r
	}
	if err := f.Validate(); err != nil {
		return domain.FilterSpec{}, err
	}

	page, err := intParam(q, "page", 1)
	if err != nil {
		return domain.FilterSpec{}, err
	}
	pageSize, err := intParam(q, "pageSize", defaultPageSize)
	if err != nil {
		return domain.FilterSpec{}, err
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return f.Spec(max(page, 1), pageSize), nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSalaryRange(raw string) (domain.SalaryRange, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return domain.SalaryRange{}, &domain.ValidationError{Msg: fmt.Sprintf("salaryRange %q: want min,max", raw)}
	}
	minK, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	maxK, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return domain.SalaryRange{}, &domain.ValidationError{Msg: fmt.Sprintf("salaryRange %q: bounds must be integers", raw)}
	}
	return domain.SalaryRange{MinK: minK, MaxK: maxK}, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Msg: fmt.Sprintf("%s must be an integer", key)}
	}
	return n, nil
}
