package domain

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// RelativeAge renders an age the way listings display it
// ("5 hours ago", "3 days ago", "2 weeks ago", "1 month ago").
// From a day on, the whole-hour age rounds up to whole days, and weeks or
// months are used only when the day count divides evenly, so parsing the
// string back never yields a younger age than the whole hours elapsed.
// Ages under an hour, and negative ages from clock skew, render as "just now".
func RelativeAge(age time.Duration) string {
	switch {
	case age < time.Hour:
		return "just now"
	case age < day:
		return plural(int(age/time.Hour), "hour")
	}

	days := int((age.Truncate(time.Hour) + day - 1) / day)
	switch {
	case days%30 == 0:
		return plural(days/30, "month")
	case days%7 == 0:
		return plural(days/7, "week")
	default:
		return plural(days, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatSalary renders a numeric range as "$120K - $150K".
// A missing bound reuses the other one; no bounds yields "".
func FormatSalary(minAmount, maxAmount float64) string {
	if minAmount <= 0 && maxAmount <= 0 {
		return ""
	}
	if minAmount <= 0 {
		minAmount = maxAmount
	}
	if maxAmount <= 0 {
		maxAmount = minAmount
	}
	return fmt.Sprintf("$%dK - $%dK", thousands(minAmount), thousands(maxAmount))
}

func thousands(v float64) int64 {
	return int64(math.Round(v / 1000))
}
