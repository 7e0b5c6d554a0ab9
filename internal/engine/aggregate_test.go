package engine

import (
	"testing"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

func institutionLedger(t *testing.T) []model.Transaction {
	t.Helper()
	txs := []model.Transaction{
		entry(t, "2025-01-15", model.Contribution, 5000),
		entry(t, "2025-03-01", model.Contribution, 2000),
		entry(t, "2025-06-20", model.Withdrawal, 1000),
		entry(t, "2025-02-10", model.Contribution, 1000),
	}
	txs[0].Institution = "RBC"
	txs[1].Institution = "RBC"
	txs[2].Institution = "RBC"
	txs[3].Institution = "Tangerine"
	return txs
}

func TestAggregateInstitutions(t *testing.T) {
	stats := AggregateInstitutions(institutionLedger(t))

	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	rbc := stats[0]
	if rbc.Institution != "RBC" {
		t.Fatalf("top institution = %q, want RBC", rbc.Institution)
	}
	if rbc.Entries != 3 {
		t.Errorf("RBC entries = %d, want 3", rbc.Entries)
	}
	if !approx(rbc.Contributions, 7000) || !approx(rbc.Withdrawals, 1000) || !approx(rbc.Net, 6000) {
		t.Errorf("RBC totals = %v/%v/%v, want 7000/1000/6000", rbc.Contributions, rbc.Withdrawals, rbc.Net)
	}
	if stats[1].Institution != "Tangerine" || !approx(stats[1].Net, 1000) {
		t.Errorf("second row = %+v, want Tangerine net 1000", stats[1])
	}
}

func TestAggregateInstitutionsTieBreaksByName(t *testing.T) {
	a := entry(t, "2025-01-01", model.Contribution, 500)
	b := entry(t, "2025-01-02", model.Contribution, 500)
	a.Institution = "Zed Trust"
	b.Institution = "Acme Credit"

	stats := AggregateInstitutions([]model.Transaction{a, b})

	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Institution != "Acme Credit" || stats[1].Institution != "Zed Trust" {
		t.Errorf("tie order = %q, %q; want name ascending", stats[0].Institution, stats[1].Institution)
	}
}

func TestMonthlyFlows(t *testing.T) {
	txs := []model.Transaction{
		entry(t, "2025-01-15", model.Contribution, 5000),
		entry(t, "2025-01-20", model.Contribution, 1500),
		entry(t, "2025-06-20", model.Withdrawal, 2000),
		entry(t, "2024-06-20", model.Withdrawal, 999), // wrong year, excluded
	}

	flows := MonthlyFlows(2025, txs)

	if len(flows) != 12 {
		t.Fatalf("len = %d, want 12", len(flows))
	}
	if flows[0].Month != time.January || !approx(flows[0].Contributions, 6500) {
		t.Errorf("January = %+v, want contributions 6500", flows[0])
	}
	if !approx(flows[5].Withdrawals, 2000) {
		t.Errorf("June withdrawals = %v, want 2000", flows[5].Withdrawals)
	}
	for i, f := range flows {
		if i == 0 || i == 5 {
			continue
		}
		if !approx(f.Contributions, 0) || !approx(f.Withdrawals, 0) {
			t.Errorf("month %d should be empty, got %+v", i+1, f)
		}
	}
}

func TestFilterByInstitution(t *testing.T) {
	txs := institutionLedger(t)

	got := FilterByInstitution(txs, "rbc")
	if len(got) != 3 {
		t.Errorf("rbc match = %d entries, want 3", len(got))
	}
	got = FilterByInstitution(txs, "TANG")
	if len(got) != 1 {
		t.Errorf("TANG match = %d entries, want 1", len(got))
	}
	got = FilterByInstitution(txs, "")
	if len(got) != len(txs) {
		t.Errorf("empty filter = %d entries, want all %d", len(got), len(txs))
	}
	got = FilterByInstitution(txs, "credit union")
	if len(got) != 0 {
		t.Errorf("no-match filter = %d entries, want 0", len(got))
	}
}

func TestFilterByKind(t *testing.T) {
	txs := institutionLedger(t)

	if got := FilterByKind(txs, model.Withdrawal); len(got) != 1 {
		t.Errorf("withdrawals = %d, want 1", len(got))
	}
	if got := FilterByKind(txs, model.Contribution); len(got) != 3 {
		t.Errorf("contributions = %d, want 3", len(got))
	}
	if got := FilterByKind(txs, ""); len(got) != len(txs) {
		t.Errorf("empty kind = %d, want all %d", len(got), len(txs))
	}
}
