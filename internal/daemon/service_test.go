package daemon

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/engine"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/store"

	"github.com/google/uuid"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Transactions:       4,
		TotalContributions: 8_000,
		TotalWithdrawals:   1_000,
		CurrentExcess:      0,
		TotalPenalty:       0,
	}
	curr := Snapshot{
		Transactions:       6,
		TotalContributions: 13_000,
		TotalWithdrawals:   2_500,
		CurrentExcess:      3_000,
		TotalPenalty:       90,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Transactions != 2 {
		t.Fatalf("Transactions delta = %d, want 2", delta.Transactions)
	}
	if math.Abs(delta.TotalContributions-5_000) > 1e-9 {
		t.Fatalf("Contributions delta = %.2f, want 5000", delta.TotalContributions)
	}
	if math.Abs(delta.TotalWithdrawals-1_500) > 1e-9 {
		t.Fatalf("Withdrawals delta = %.2f, want 1500", delta.TotalWithdrawals)
	}
	if math.Abs(delta.CurrentExcess-3_000) > 1e-9 {
		t.Fatalf("Excess delta = %.2f, want 3000", delta.CurrentExcess)
	}
	if math.Abs(delta.TotalPenalty-90) > 1e-9 {
		t.Fatalf("Penalty delta = %.2f, want 90", delta.TotalPenalty)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		LedgerPath:   "ledger.db",
		Year:         2025,
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func saveEntry(t *testing.T, path, date string, kind model.Kind, amount float64) {
	t.Helper()
	ledger, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = ledger.Close() }()

	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	tx := model.Transaction{
		ID:          uuid.NewString(),
		Date:        parsed,
		Kind:        kind,
		Amount:      amount,
		Institution: "Test Bank",
	}
	if err := ledger.SaveTransaction(tx); err != nil {
		t.Fatalf("SaveTransaction: %v", err)
	}
}

func TestPollOnceSkipsUnchangedLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	saveEntry(t, path, "2025-02-01", model.Contribution, 5_000)

	s := New(Config{
		LedgerPath:   path,
		Year:         2025,
		StartingRoom: 10_000,
		Interval:     time.Hour,
	})

	s.pollOnce()
	s.mu.RLock()
	if !s.hasSnapshot {
		t.Fatal("first poll produced no snapshot")
	}
	if s.snapshot.Transactions != 1 {
		t.Fatalf("Transactions = %d, want 1", s.snapshot.Transactions)
	}
	if len(s.events) != 1 || s.events[0].Type != "snapshot" {
		t.Fatalf("after first poll events = %+v, want one snapshot event", s.events)
	}
	s.mu.RUnlock()

	// Nothing on disk changed, so the second poll must not reload or publish.
	s.pollOnce()
	s.mu.RLock()
	if s.pollCount != 2 {
		t.Fatalf("pollCount = %d, want 2", s.pollCount)
	}
	if len(s.events) != 1 {
		t.Fatalf("unchanged ledger produced %d events, want 1", len(s.events))
	}
	s.mu.RUnlock()

	saveEntry(t, path, "2025-03-01", model.Contribution, 8_000)
	// Filesystem mtime granularity can hide a fast rewrite; force it forward.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	s.pollOnce()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot.Transactions != 2 {
		t.Fatalf("Transactions = %d, want 2 after reload", s.snapshot.Transactions)
	}
	if len(s.events) != 2 {
		t.Fatalf("changed ledger produced %d events, want 2", len(s.events))
	}
	last := s.events[len(s.events)-1]
	if last.Type != "ledger_delta" {
		t.Fatalf("last event type = %q, want ledger_delta", last.Type)
	}
	if last.Delta.Transactions != 1 {
		t.Fatalf("Delta.Transactions = %d, want 1", last.Delta.Transactions)
	}
	if math.Abs(last.Delta.CurrentExcess-3_000) > 1e-9 {
		t.Fatalf("Delta.CurrentExcess = %.2f, want 3000", last.Delta.CurrentExcess)
	}
}

func TestPollOnceMissingLedger(t *testing.T) {
	s := New(Config{
		LedgerPath:   filepath.Join(t.TempDir(), "absent.db"),
		Year:         2025,
		StartingRoom: 7_000,
		Interval:     time.Hour,
	})

	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastError != "" {
		t.Fatalf("missing ledger reported error %q, want none", s.lastError)
	}
	if !s.hasSnapshot {
		t.Fatal("missing ledger produced no snapshot")
	}
	if s.snapshot.Transactions != 0 {
		t.Fatalf("Transactions = %d, want 0", s.snapshot.Transactions)
	}
	if math.Abs(s.snapshot.RemainingRoom-7_000) > 1e-9 {
		t.Fatalf("RemainingRoom = %.2f, want 7000", s.snapshot.RemainingRoom)
	}
}

func TestResultPayloadShape(t *testing.T) {
	res := engine.Simulate(2025, 1_000, nil)
	payload := resultPayload(res)

	if payload.Year != 2025 {
		t.Fatalf("Year = %d, want 2025", payload.Year)
	}
	if len(payload.Months) != 12 {
		t.Fatalf("Months len = %d, want 12", len(payload.Months))
	}
	if payload.Months[0].Month != 1 || payload.Months[11].Month != 12 {
		t.Fatalf("month numbers = %d..%d, want 1..12", payload.Months[0].Month, payload.Months[11].Month)
	}
	if len(payload.Trace) != 365 {
		t.Fatalf("Trace len = %d, want 365", len(payload.Trace))
	}
	if payload.Trace[0].Date != "2025-01-01" {
		t.Fatalf("Trace[0].Date = %q, want 2025-01-01", payload.Trace[0].Date)
	}
	if payload.Trace[364].Date != "2025-12-31" {
		t.Fatalf("last trace date = %q, want 2025-12-31", payload.Trace[364].Date)
	}
}
