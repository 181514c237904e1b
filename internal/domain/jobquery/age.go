package jobquery

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	leadingIntRE = regexp.MustCompile(`\d+`)
	ageUnitRE    = regexp.MustCompile(`hour|day|week|month`)
)

var ageUnits = map[string]time.Duration{
	"hour":  time.Hour,
	"day":   day,
	"week":  7 * day,
	"month": 30 * day,
}

// ParseAge converts a relative string such as "3 days ago" into an age
// from its leading integer and the first unit word after it.
// Strings without a count and a known unit are treated as posted now.
// Counts too large to represent saturate at the maximum duration.
func ParseAge(postedAt string) time.Duration {
	s := strings.ToLower(postedAt)
	loc := leadingIntRE.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	unitName := ageUnitRE.FindString(s[loc[1]:])
	if unitName == "" {
		return 0
	}
	unit := ageUnits[unitName]

	n, err := strconv.ParseInt(s[loc[0]:loc[1]], 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return time.Duration(math.MaxInt64)
		}
		return 0
	}
	if n > int64(math.MaxInt64/unit) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n) * unit
}

var bucketWindows = map[string]time.Duration{
	"24h": day,
	"7d":  7 * day,
	"14d": 14 * day,
	"30d": 30 * day,
}

// BucketWindow returns the max age of a date-posted bucket.
// ok is false for "", "any" and unknown buckets, which do not filter.
func BucketWindow(bucket string) (window time.Duration, ok bool) {
	window, ok = bucketWindows[bucket]
	return window, ok
}
