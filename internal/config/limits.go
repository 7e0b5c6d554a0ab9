package config

import (
	"sort"
	"strconv"
)

// DefaultFeedURL is the published annual-limit table this tool mirrors.
const DefaultFeedURL = "https://raw.githubusercontent.com/theirongolddev/tfsa-limits/main/limits.json"

// FallbackAnnualLimit applies to years absent from the limit table.
const FallbackAnnualLimit = 7000

// defaultAnnualLimits maps a year to its published TFSA dollar limit.
var defaultAnnualLimits = map[int]float64{
	2009: 5000,
	2010: 5000,
	2011: 5000,
	2012: 5000,
	2013: 5500,
	2014: 5500,
	2015: 10000,
	2016: 5500,
	2017: 5500,
	2018: 5500,
	2019: 6000,
	2020: 6000,
	2021: 6000,
	2022: 6000,
	2023: 6500,
	2024: 7000,
	2025: 7000,
	2026: 7000,
}

// limitOverrides holds [limits.annual] config entries, keyed by year.
// Installed once at startup via ApplyLimitOverrides.
var limitOverrides = map[int]float64{}

// ApplyLimitOverrides installs the config's annual-limit entries over the
// built-in table. Keys that are not years and non-positive amounts are skipped.
func ApplyLimitOverrides(cfg Config) {
	overrides := make(map[int]float64, len(cfg.Limits.Annual))
	for key, amount := range cfg.Limits.Annual {
		year, err := strconv.Atoi(key)
		if err != nil || amount <= 0 {
			continue
		}
		overrides[year] = amount
	}
	limitOverrides = overrides
}

// AnnualLimit returns the limit for a year, consulting overrides first.
// Returns zero and false if the year is in neither table.
func AnnualLimit(year int) (float64, bool) {
	if v, ok := limitOverrides[year]; ok {
		return v, true
	}
	v, ok := defaultAnnualLimits[year]
	return v, ok
}

// AnnualLimitOrFallback returns the limit for a year, or FallbackAnnualLimit
// when the year is unknown. Never misses.
func AnnualLimitOrFallback(year int) float64 {
	if v, ok := AnnualLimit(year); ok {
		return v
	}
	return FallbackAnnualLimit
}

// IsLimitOverridden reports whether the year's limit comes from config
// rather than the built-in table.
func IsLimitOverridden(year int) bool {
	_, ok := limitOverrides[year]
	return ok
}

// LimitYears returns every year with a known limit, ascending.
func LimitYears() []int {
	seen := make(map[int]struct{}, len(defaultAnnualLimits)+len(limitOverrides))
	for y := range defaultAnnualLimits {
		seen[y] = struct{}{}
	}
	for y := range limitOverrides {
		seen[y] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
