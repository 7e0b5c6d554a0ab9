package engine

import (
	"testing"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name          string
		startingRoom  float64
		contributions float64
		withdrawals   float64
		nextLimit     float64
		wantUnused    float64
		wantRemaining float64
		wantNextYear  float64
	}{
		{
			name:         "room left over",
			startingRoom: 10000, contributions: 4000, withdrawals: 500, nextLimit: 7000,
			wantUnused: 6000, wantRemaining: 6000, wantNextYear: 13500,
		},
		{
			name:         "overshoot carries a deficit",
			startingRoom: 10000, contributions: 17000, withdrawals: 2000, nextLimit: 7000,
			wantUnused: -7000, wantRemaining: 0, wantNextYear: 2000,
		},
		{
			name:         "exact fit",
			startingRoom: 7000, contributions: 7000, withdrawals: 0, nextLimit: 7000,
			wantUnused: 0, wantRemaining: 0, wantNextYear: 7000,
		},
		{
			name:         "withdrawals only feed next year",
			startingRoom: 0, contributions: 0, withdrawals: 5000, nextLimit: 6500,
			wantUnused: 0, wantRemaining: 0, wantNextYear: 11500,
		},
		{
			name:         "negative starting room",
			startingRoom: -500, contributions: 0, withdrawals: 0, nextLimit: 7000,
			wantUnused: -500, wantRemaining: 0, wantNextYear: 6500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(tt.startingRoom, tt.contributions, tt.withdrawals, tt.nextLimit)
			if !approx(p.UnusedRoomEndOfYear, tt.wantUnused) {
				t.Errorf("UnusedRoomEndOfYear = %v, want %v", p.UnusedRoomEndOfYear, tt.wantUnused)
			}
			if !approx(p.CurrentYearRemaining, tt.wantRemaining) {
				t.Errorf("CurrentYearRemaining = %v, want %v", p.CurrentYearRemaining, tt.wantRemaining)
			}
			if !approx(p.NextYearRoom, tt.wantNextYear) {
				t.Errorf("NextYearRoom = %v, want %v", p.NextYearRoom, tt.wantNextYear)
			}
			if !approx(p.NextAnnualLimit, tt.nextLimit) {
				t.Errorf("NextAnnualLimit = %v, want %v", p.NextAnnualLimit, tt.nextLimit)
			}
		})
	}
}

func TestProjectOrderIndependence(t *testing.T) {
	// Two ledgers with identical totals but swapped event order must
	// project the same next-year room even though the excess histories
	// along the way differ.
	a := Simulate(2025, 5000, []model.Transaction{
		entry(t, "2025-01-10", model.Contribution, 8000),
		entry(t, "2025-06-10", model.Withdrawal, 2000),
	})
	b := Simulate(2025, 5000, []model.Transaction{
		entry(t, "2025-01-10", model.Withdrawal, 2000),
		entry(t, "2025-06-10", model.Contribution, 8000),
	})

	if !approx(a.NextYearRoom, b.NextYearRoom) {
		t.Errorf("NextYearRoom disagrees: %v vs %v", a.NextYearRoom, b.NextYearRoom)
	}
	if !approx(a.UnusedRoomEndOfYear, b.UnusedRoomEndOfYear) {
		t.Errorf("UnusedRoomEndOfYear disagrees: %v vs %v", a.UnusedRoomEndOfYear, b.UnusedRoomEndOfYear)
	}
	// Sanity: the penalty histories really do differ, only the projection agrees.
	if approx(a.TotalPenalty, b.TotalPenalty) {
		t.Errorf("expected differing penalties, both %v", a.TotalPenalty)
	}
}
