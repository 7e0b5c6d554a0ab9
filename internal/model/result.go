package model

import "time"

// PenaltyRate is the monthly tax on the excess high-water mark.
const PenaltyRate = 0.01

// MonthlyRecord holds the excess high-water mark for one calendar month,
// evaluated after each day's transactions were applied.
type MonthlyRecord struct {
	Month     time.Month
	MaxExcess float64
	Penalty   float64 // MaxExcess x PenaltyRate
	Affected  bool    // MaxExcess > 0
}

// TracePoint records the outstanding excess at the end of one simulated day.
type TracePoint struct {
	Date   time.Time
	Excess float64
}

// Projection holds the room figures derived from a year's ledger totals.
type Projection struct {
	UnusedRoomEndOfYear  float64 // startingRoom - contributions; may be negative
	CurrentYearRemaining float64 // clamped at zero; withdrawals never raise it
	NextAnnualLimit      float64 // published limit for year+1
	NextYearRoom         float64 // unused + withdrawals + next limit
}

// SimulationResult is the complete output of one simulation run. Recomputed
// from scratch on every input change, never mutated incrementally.
type SimulationResult struct {
	Year         int
	StartingRoom float64

	TotalContributions float64
	TotalWithdrawals   float64

	CurrentExcess  float64 // outstanding excess at December 31
	PeakExcess     float64 // maximum monthly MaxExcess
	TotalPenalty   float64 // sum of monthly penalties
	AffectedMonths int

	RemainingRoom       float64 // still contributable this year without new excess
	UnusedRoomEndOfYear float64 // may be negative
	NextAnnualLimit     float64
	NextYearRoom        float64

	Months []MonthlyRecord // always 12, January through December
	Trace  []TracePoint    // one per simulated day, 365 or 366
}

// InstitutionStats holds per-institution ledger totals.
type InstitutionStats struct {
	Institution   string
	Entries       int
	Contributions float64
	Withdrawals   float64
	Net           float64 // contributions minus withdrawals
}

// MonthFlow holds contribution and withdrawal totals for one calendar month.
type MonthFlow struct {
	Month         time.Month
	Contributions float64
	Withdrawals   float64
}
