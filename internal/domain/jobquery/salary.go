package jobquery

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDigitRE  = regexp.MustCompile(`[^0-9]`)
	thousandsRE = regexp.MustCompile(`\d\s*[kK]`)
)

// ParseSalary averages the two bounds of a salary string like "$90K - $110K".
// Everything but digits is stripped from each side of the first hyphen;
// a side written with a K suffix is in thousands.
// ok is false when either side has no digits or there is no hyphen.
func ParseSalary(salary string) (avg float64, ok bool) {
	low, high, found := strings.Cut(salary, "-")
	if !found {
		return 0, false
	}

	lo, ok := parseBound(low)
	if !ok {
		return 0, false
	}
	hi, ok := parseBound(high)
	if !ok {
		return 0, false
	}

	return (lo + hi) / 2, true
}

func parseBound(raw string) (float64, bool) {
	if strings.Contains(raw, "-") {
		return 0, false
	}

	digits := nonDigitRE.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}

	if thousandsRE.MatchString(raw) {
		v *= 1000
	}
	return v, true
}
