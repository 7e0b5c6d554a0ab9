package daemon

import (
	"github.com/theirongolddev/tfsaroom/internal/model"
)

// Result is the full simulation output served at /v1/result.
type Result struct {
	Year         int     `json:"year"`
	StartingRoom float64 `json:"starting_room"`

	TotalContributions float64 `json:"total_contributions"`
	TotalWithdrawals   float64 `json:"total_withdrawals"`

	CurrentExcess  float64 `json:"current_excess"`
	PeakExcess     float64 `json:"peak_excess"`
	TotalPenalty   float64 `json:"total_penalty"`
	AffectedMonths int     `json:"affected_months"`

	RemainingRoom       float64 `json:"remaining_room"`
	UnusedRoomEndOfYear float64 `json:"unused_room_end_of_year"`
	NextAnnualLimit     float64 `json:"next_annual_limit"`
	NextYearRoom        float64 `json:"next_year_room"`

	Months []ResultMonth `json:"months"`
	Trace  []ResultPoint `json:"trace"`
}

// ResultMonth is one month's penalty line in a Result.
type ResultMonth struct {
	Month     int     `json:"month"` // 1 through 12
	MaxExcess float64 `json:"max_excess"`
	Penalty   float64 `json:"penalty"`
	Affected  bool    `json:"affected"`
}

// ResultPoint is one day's closing excess in a Result.
type ResultPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Excess float64 `json:"excess"`
}

func resultPayload(res model.SimulationResult) Result {
	out := Result{
		Year:                res.Year,
		StartingRoom:        res.StartingRoom,
		TotalContributions:  res.TotalContributions,
		TotalWithdrawals:    res.TotalWithdrawals,
		CurrentExcess:       res.CurrentExcess,
		PeakExcess:          res.PeakExcess,
		TotalPenalty:        res.TotalPenalty,
		AffectedMonths:      res.AffectedMonths,
		RemainingRoom:       res.RemainingRoom,
		UnusedRoomEndOfYear: res.UnusedRoomEndOfYear,
		NextAnnualLimit:     res.NextAnnualLimit,
		NextYearRoom:        res.NextYearRoom,
		Months:              make([]ResultMonth, 0, len(res.Months)),
		Trace:               make([]ResultPoint, 0, len(res.Trace)),
	}
	for _, m := range res.Months {
		out.Months = append(out.Months, ResultMonth{
			Month:     int(m.Month),
			MaxExcess: m.MaxExcess,
			Penalty:   m.Penalty,
			Affected:  m.Affected,
		})
	}
	for _, p := range res.Trace {
		out.Trace = append(out.Trace, ResultPoint{
			Date:   p.Date.Format(model.DateLayout),
			Excess: p.Excess,
		})
	}
	return out
}
