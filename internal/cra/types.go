package cra

import (
	"encoding/json"
	"sort"
	"time"
)

// feedResponse is the raw limit feed payload. Limit values arrive as
// numbers or strings, so they stay raw JSON until parseAmount sees them.
type feedResponse struct {
	Updated string                     `json:"updated"`
	Limits  map[string]json.RawMessage `json:"limits"`
}

// LimitFeed is the parsed feed: published TFSA dollar limits keyed by
// calendar year.
type LimitFeed struct {
	Updated   string
	Limits    map[int]float64
	FetchedAt time.Time
}

// Years returns the feed's years in ascending order.
func (f *LimitFeed) Years() []int {
	years := make([]int, 0, len(f.Limits))
	for y := range f.Limits {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
