package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

func entry(t *testing.T, date string, kind model.Kind, amount float64) model.Transaction {
	t.Helper()
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        d,
		Kind:        kind,
		Amount:      amount,
		Institution: "Test Bank",
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimulateOverContributionThenRelief(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-01-01", model.Contribution, 15000),
		entry(t, "2025-01-02", model.Withdrawal, 2000),
		entry(t, "2025-01-03", model.Contribution, 2000),
	}

	res := Simulate(2025, 10000, txs)

	if !approx(res.CurrentExcess, 5000) {
		t.Errorf("CurrentExcess = %v, want 5000", res.CurrentExcess)
	}
	if !approx(res.RemainingRoom, 0) {
		t.Errorf("RemainingRoom = %v, want 0", res.RemainingRoom)
	}
	if !approx(res.TotalContributions, 17000) {
		t.Errorf("TotalContributions = %v, want 17000", res.TotalContributions)
	}
	if !approx(res.TotalWithdrawals, 2000) {
		t.Errorf("TotalWithdrawals = %v, want 2000", res.TotalWithdrawals)
	}
	// January's high-water mark is the day-1 spill, not the day-2 relief.
	if !approx(res.Months[0].MaxExcess, 5000) {
		t.Errorf("January MaxExcess = %v, want 5000", res.Months[0].MaxExcess)
	}
	if !approx(res.PeakExcess, 5000) {
		t.Errorf("PeakExcess = %v, want 5000", res.PeakExcess)
	}
	// Excess of 5000 persists through December: 12 months at 1% each.
	if !approx(res.TotalPenalty, 600) {
		t.Errorf("TotalPenalty = %v, want 600", res.TotalPenalty)
	}
	if res.AffectedMonths != 12 {
		t.Errorf("AffectedMonths = %d, want 12", res.AffectedMonths)
	}
}

func TestSimulateExactFit(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-03-01", model.Contribution, 7000),
	}

	res := Simulate(2025, 7000, txs)

	if !approx(res.RemainingRoom, 0) {
		t.Errorf("RemainingRoom = %v, want 0", res.RemainingRoom)
	}
	if !approx(res.CurrentExcess, 0) {
		t.Errorf("CurrentExcess = %v, want 0", res.CurrentExcess)
	}
	if !approx(res.TotalPenalty, 0) {
		t.Errorf("TotalPenalty = %v, want 0", res.TotalPenalty)
	}
	if res.AffectedMonths != 0 {
		t.Errorf("AffectedMonths = %d, want 0", res.AffectedMonths)
	}
	for _, m := range res.Months {
		if m.Affected || !approx(m.Penalty, 0) {
			t.Errorf("%s: Affected=%v Penalty=%v, want clean month", m.Month, m.Affected, m.Penalty)
		}
	}
}

func TestSimulatePersistentExcess(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-01-15", model.Contribution, 1000),
	}

	res := Simulate(2025, 0, txs)

	for i, m := range res.Months {
		if !approx(m.MaxExcess, 1000) {
			t.Errorf("month %d MaxExcess = %v, want 1000", i+1, m.MaxExcess)
		}
		if !approx(m.Penalty, 10) {
			t.Errorf("month %d Penalty = %v, want 10", i+1, m.Penalty)
		}
		if !m.Affected {
			t.Errorf("month %d not marked affected", i+1)
		}
	}
	if !approx(res.TotalPenalty, 120) {
		t.Errorf("TotalPenalty = %v, want 120", res.TotalPenalty)
	}
	if res.AffectedMonths != 12 {
		t.Errorf("AffectedMonths = %d, want 12", res.AffectedMonths)
	}
}

func TestSimulateNegativeStartingRoom(t *testing.T) {
	res := Simulate(2025, -500, nil)

	if !approx(res.Trace[0].Excess, 500) {
		t.Errorf("day-1 excess = %v, want 500", res.Trace[0].Excess)
	}
	if !approx(res.CurrentExcess, 500) {
		t.Errorf("CurrentExcess = %v, want 500", res.CurrentExcess)
	}
	if !approx(res.RemainingRoom, 0) {
		t.Errorf("RemainingRoom = %v, want 0", res.RemainingRoom)
	}
	if !approx(res.TotalPenalty, 60) {
		t.Errorf("TotalPenalty = %v, want 60", res.TotalPenalty)
	}
	if !approx(res.UnusedRoomEndOfYear, -500) {
		t.Errorf("UnusedRoomEndOfYear = %v, want -500", res.UnusedRoomEndOfYear)
	}
	// -500 carried deficit + 7000 limit for 2026.
	if !approx(res.NextYearRoom, 6500) {
		t.Errorf("NextYearRoom = %v, want 6500", res.NextYearRoom)
	}
}

func TestSimulateEmptyLedger(t *testing.T) {
	res := Simulate(2025, 12000, nil)

	if !approx(res.RemainingRoom, 12000) {
		t.Errorf("RemainingRoom = %v, want 12000", res.RemainingRoom)
	}
	if res.AffectedMonths != 0 || !approx(res.TotalPenalty, 0) {
		t.Errorf("expected no penalties, got affected=%d penalty=%v", res.AffectedMonths, res.TotalPenalty)
	}
	if len(res.Months) != 12 {
		t.Fatalf("len(Months) = %d, want 12", len(res.Months))
	}
	if len(res.Trace) != 365 {
		t.Fatalf("len(Trace) = %d, want 365", len(res.Trace))
	}
	first := res.Trace[0].Date
	last := res.Trace[len(res.Trace)-1].Date
	if first.Month() != time.January || first.Day() != 1 {
		t.Errorf("trace starts %v, want Jan 1", first)
	}
	if last.Month() != time.December || last.Day() != 31 {
		t.Errorf("trace ends %v, want Dec 31", last)
	}
}

func TestSimulateLeapYearTrace(t *testing.T) {
	leap := Simulate(2024, 0, nil)
	if len(leap.Trace) != 366 {
		t.Errorf("2024 trace has %d points, want 366", len(leap.Trace))
	}
	feb29 := leap.Trace[59].Date
	if feb29.Month() != time.February || feb29.Day() != 29 {
		t.Errorf("trace[59] = %v, want Feb 29", feb29)
	}

	plain := Simulate(2025, 0, nil)
	if len(plain.Trace) != 365 {
		t.Errorf("2025 trace has %d points, want 365", len(plain.Trace))
	}
}

func TestSimulateDeterminism(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-02-10", model.Contribution, 4000),
		entry(t, "2025-05-20", model.Withdrawal, 1500),
		entry(t, "2025-05-20", model.Contribution, 9000),
		entry(t, "2025-11-02", model.Withdrawal, 300),
	}

	a := Simulate(2025, 6000, txs)
	b := Simulate(2025, 6000, txs)

	if !reflect.DeepEqual(a, b) {
		t.Error("repeated runs over identical inputs disagree")
	}
}

func TestSimulateSortsAcrossDates(t *testing.T) {
	shuffled := []model.Transaction{
		entry(t, "2025-09-05", model.Contribution, 2000),
		entry(t, "2025-01-01", model.Contribution, 15000),
		entry(t, "2025-06-10", model.Withdrawal, 2000),
	}
	sorted := []model.Transaction{shuffled[1], shuffled[2], shuffled[0]}

	a := Simulate(2025, 10000, shuffled)
	b := Simulate(2025, 10000, sorted)

	if !reflect.DeepEqual(a, b) {
		t.Error("input ordering across distinct dates changed the result")
	}
	if !approx(a.CurrentExcess, 5000) {
		t.Errorf("CurrentExcess = %v, want 5000", a.CurrentExcess)
	}
}

func TestSimulateSameDayLedgerOrder(t *testing.T) {
	// Same-day entries apply in ledger order, so contribute-then-withdraw
	// ends the day clean while withdraw-then-contribute ends it in excess.
	contribute := entry(t, "2025-04-01", model.Contribution, 1000)
	withdraw := entry(t, "2025-04-01", model.Withdrawal, 1000)

	clean := Simulate(2025, 0, []model.Transaction{contribute, withdraw})
	if !approx(clean.CurrentExcess, 0) {
		t.Errorf("contribute-then-withdraw CurrentExcess = %v, want 0", clean.CurrentExcess)
	}
	if clean.AffectedMonths != 0 {
		t.Errorf("contribute-then-withdraw AffectedMonths = %d, want 0", clean.AffectedMonths)
	}

	stuck := Simulate(2025, 0, []model.Transaction{withdraw, contribute})
	if !approx(stuck.CurrentExcess, 1000) {
		t.Errorf("withdraw-then-contribute CurrentExcess = %v, want 1000", stuck.CurrentExcess)
	}
	if stuck.AffectedMonths != 9 {
		t.Errorf("withdraw-then-contribute AffectedMonths = %d, want 9", stuck.AffectedMonths)
	}
}

func TestSimulateWithdrawalDoesNotRestoreRoom(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-01-10", model.Contribution, 5000),
		entry(t, "2025-02-10", model.Withdrawal, 3000),
		entry(t, "2025-03-10", model.Contribution, 1000),
	}

	res := Simulate(2025, 5000, txs)

	// The February withdrawal is discarded, not banked: March's
	// contribution finds no room and spills straight into excess.
	if !approx(res.RemainingRoom, 0) {
		t.Errorf("RemainingRoom = %v, want 0", res.RemainingRoom)
	}
	if !approx(res.CurrentExcess, 1000) {
		t.Errorf("CurrentExcess = %v, want 1000", res.CurrentExcess)
	}
	if !approx(res.TotalWithdrawals, 3000) {
		t.Errorf("TotalWithdrawals = %v, want 3000", res.TotalWithdrawals)
	}
	// The withdrawal does feed next year: -1000 + 3000 + 7000.
	if !approx(res.NextYearRoom, 9000) {
		t.Errorf("NextYearRoom = %v, want 9000", res.NextYearRoom)
	}
}

func TestSimulateIgnoresOutOfYearTransactions(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2024-12-31", model.Contribution, 5000),
		entry(t, "2026-01-01", model.Withdrawal, 500),
	}

	res := Simulate(2025, 3000, txs)

	if !approx(res.TotalContributions, 0) || !approx(res.TotalWithdrawals, 0) {
		t.Errorf("out-of-year entries leaked into totals: contrib=%v withdraw=%v",
			res.TotalContributions, res.TotalWithdrawals)
	}
	if !approx(res.RemainingRoom, 3000) {
		t.Errorf("RemainingRoom = %v, want untouched 3000", res.RemainingRoom)
	}
	if !approx(res.CurrentExcess, 0) {
		t.Errorf("CurrentExcess = %v, want 0", res.CurrentExcess)
	}
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-08-01", model.Contribution, 500),
		entry(t, "2025-03-01", model.Contribution, 700),
	}
	before := make([]model.Transaction, len(txs))
	copy(before, txs)

	Simulate(2025, 1000, txs)

	if !reflect.DeepEqual(txs, before) {
		t.Error("Simulate reordered the caller's slice")
	}
}

func TestSimulateInvariants(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-01-05", model.Contribution, 8000),
		entry(t, "2025-02-14", model.Withdrawal, 20000),
		entry(t, "2025-04-01", model.Contribution, 3500),
		entry(t, "2025-04-01", model.Withdrawal, 200),
		entry(t, "2025-07-30", model.Contribution, 12000),
		entry(t, "2025-12-31", model.Withdrawal, 1),
	}

	res := Simulate(2025, 6000, txs)

	for _, p := range res.Trace {
		if p.Excess < 0 {
			t.Fatalf("negative excess %v on %s", p.Excess, p.Date.Format(model.DateLayout))
		}
	}
	if res.RemainingRoom < 0 {
		t.Errorf("RemainingRoom = %v, want >= 0", res.RemainingRoom)
	}

	var peak, penalties float64
	affected := 0
	for _, m := range res.Months {
		if m.MaxExcess > peak {
			peak = m.MaxExcess
		}
		penalties += m.Penalty
		if m.Affected {
			affected++
		}
	}
	if !approx(res.PeakExcess, peak) {
		t.Errorf("PeakExcess = %v, months say %v", res.PeakExcess, peak)
	}
	if !approx(res.TotalPenalty, penalties) {
		t.Errorf("TotalPenalty = %v, months sum to %v", res.TotalPenalty, penalties)
	}
	if res.AffectedMonths != affected {
		t.Errorf("AffectedMonths = %d, months say %d", res.AffectedMonths, affected)
	}
}

func TestSimulateProjectionConsistency(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-02-01", model.Contribution, 9000),
		entry(t, "2025-06-15", model.Withdrawal, 2500),
	}

	res := Simulate(2025, 10000, txs)
	proj := Project(10000, res.TotalContributions, res.TotalWithdrawals, res.NextAnnualLimit)

	if !approx(res.UnusedRoomEndOfYear, proj.UnusedRoomEndOfYear) {
		t.Errorf("UnusedRoomEndOfYear = %v, projector says %v", res.UnusedRoomEndOfYear, proj.UnusedRoomEndOfYear)
	}
	if !approx(res.NextYearRoom, proj.NextYearRoom) {
		t.Errorf("NextYearRoom = %v, projector says %v", res.NextYearRoom, proj.NextYearRoom)
	}
	if !approx(res.RemainingRoom, proj.CurrentYearRemaining) {
		t.Errorf("RemainingRoom = %v, projector says %v", res.RemainingRoom, proj.CurrentYearRemaining)
	}
}

func TestSimulateNextAnnualLimitLookup(t *testing.T) {
	fromTable := Simulate(2022, 0, nil)
	if !approx(fromTable.NextAnnualLimit, 6500) {
		t.Errorf("2023 limit = %v, want 6500", fromTable.NextAnnualLimit)
	}

	fallback := Simulate(2026, 0, nil)
	if !approx(fallback.NextAnnualLimit, 7000) {
		t.Errorf("2027 limit = %v, want fallback 7000", fallback.NextAnnualLimit)
	}
}
