package engine

import "github.com/theirongolddev/tfsaroom/internal/model"

// Project computes the end-of-year room carryforward from simulation totals.
// Unused room may go negative when contributions overshoot the starting room;
// the overshoot carries into next year's figure, while the current-year
// remaining room is clamped at zero.
func Project(startingRoom, totalContributions, totalWithdrawals, nextAnnualLimit float64) model.Projection {
	unusedEnd := startingRoom - totalContributions
	return model.Projection{
		UnusedRoomEndOfYear:  unusedEnd,
		CurrentYearRemaining: max(unusedEnd, 0),
		NextAnnualLimit:      nextAnnualLimit,
		NextYearRoom:         unusedEnd + totalWithdrawals + nextAnnualLimit,
	}
}
