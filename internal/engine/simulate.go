// Package engine runs the day-by-day excess simulation and derives
// penalty and room-carryforward figures from an admitted ledger.
package engine

import (
	"sort"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/model"
)

// Simulate walks every calendar day of the given year in UTC and applies
// the ledger's transactions in date order, tracking unused room and the
// running excess. Transactions dated outside the year are never applied.
// The input slice is not modified; same-day entries keep their ledger order.
func Simulate(year int, startingRoom float64, txs []model.Transaction) model.SimulationResult {
	ordered := make([]model.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DateKey() < ordered[j].DateKey()
	})

	byDay := make(map[string][]model.Transaction)
	for _, tx := range ordered {
		if !tx.InYear(year) {
			continue
		}
		byDay[tx.DateKey()] = append(byDay[tx.DateKey()], tx)
	}

	unusedRoom := startingRoom
	excess := 0.0
	if unusedRoom < 0 {
		excess = -unusedRoom
		unusedRoom = 0
	}

	var (
		totalContributions float64
		totalWithdrawals   float64
		monthMax           [12]float64
	)
	trace := make([]model.TracePoint, 0, 366)

	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for !day.After(end) {
		for _, tx := range byDay[day.Format(model.DateLayout)] {
			switch tx.Kind {
			case model.Contribution:
				applied := min(unusedRoom, tx.Amount)
				unusedRoom -= applied
				excess += tx.Amount - applied
				totalContributions += tx.Amount
			case model.Withdrawal:
				// A withdrawal relieves excess but never restores
				// contribution room within the same year.
				excess -= min(excess, tx.Amount)
				totalWithdrawals += tx.Amount
			}
		}

		trace = append(trace, model.TracePoint{Date: day, Excess: excess})
		mi := int(day.Month()) - 1
		if excess > monthMax[mi] {
			monthMax[mi] = excess
		}

		day = day.AddDate(0, 0, 1)
	}

	months := make([]model.MonthlyRecord, 12)
	var (
		totalPenalty   float64
		peakExcess     float64
		affectedMonths int
	)
	for i := range months {
		rec := model.MonthlyRecord{
			Month:     time.Month(i + 1),
			MaxExcess: monthMax[i],
			Penalty:   monthMax[i] * model.PenaltyRate,
			Affected:  monthMax[i] > 0,
		}
		months[i] = rec
		totalPenalty += rec.Penalty
		if rec.MaxExcess > peakExcess {
			peakExcess = rec.MaxExcess
		}
		if rec.Affected {
			affectedMonths++
		}
	}

	proj := Project(startingRoom, totalContributions, totalWithdrawals,
		config.AnnualLimitOrFallback(year+1))

	return model.SimulationResult{
		Year:                year,
		StartingRoom:        startingRoom,
		TotalContributions:  totalContributions,
		TotalWithdrawals:    totalWithdrawals,
		CurrentExcess:       excess,
		PeakExcess:          peakExcess,
		TotalPenalty:        totalPenalty,
		AffectedMonths:      affectedMonths,
		RemainingRoom:       unusedRoom,
		UnusedRoomEndOfYear: proj.UnusedRoomEndOfYear,
		NextAnnualLimit:     proj.NextAnnualLimit,
		NextYearRoom:        proj.NextYearRoom,
		Months:              months,
		Trace:               trace,
	}
}
