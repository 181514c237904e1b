package jobquery

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/careerhub/internal/domain"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "5 hours ago", want: 5 * time.Hour},
		{in: "1 hour ago", want: time.Hour},
		{in: "3 days ago", want: 3 * day},
		{in: "2 weeks ago", want: 14 * day},
		{in: "1 month ago", want: 30 * day},
		{in: "2 Months ago", want: 60 * day},
		{in: "posted 4 days ago", want: 4 * day},
		{in: "3 minutes ago", want: 0},
		{in: "just now", want: 0},
		{in: "yesterday", want: 0},
		{in: "", want: 0},
		{in: "99999999999999999999 days ago", want: time.Duration(math.MaxInt64)},
		{in: "9223372036854775807 days ago", want: time.Duration(math.MaxInt64)},
		{in: "30+ days ago", want: 30 * day},
		{in: "1-2 weeks ago", want: 7 * day},
		{in: "9999999999999 months ago", want: time.Duration(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAge(tt.in))
		})
	}
}

func TestParseAge_RelativeAgeNeverYounger(t *testing.T) {
	for age := time.Hour; age <= 90*day; age += 7 * time.Hour {
		text := domain.RelativeAge(age)
		got := ParseAge(text)
		if !assert.GreaterOrEqual(t, got, age.Truncate(time.Hour), "%s rendered as %q", age, text) {
			return
		}
		assert.Less(t, got, age+day, "%s rendered as %q", age, text)
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "$90K - $110K", want: 100000, wantOK: true},
		{in: "$90k-$110k", want: 100000, wantOK: true},
		{in: "$50,000 - $70,000", want: 60000, wantOK: true},
		{in: "120-151", want: 135.5, wantOK: true},
		{in: "Competitive", wantOK: false},
		{in: "$120K", wantOK: false},
		{in: "- $100K", wantOK: false},
		{in: "$100K -", wantOK: false},
		{in: "$1-2-3", wantOK: false},
		// decimals are stripped before the K multiplier: 15K and 2K
		{in: "$1.5K - $2K", want: 8500, wantOK: true},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSalary(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestBucketWindow(t *testing.T) {
	w, ok := BucketWindow("14d")
	assert.True(t, ok)
	assert.Equal(t, 14*day, w)

	_, ok = BucketWindow("any")
	assert.False(t, ok)
}
