// Package daemon provides the long-running background ledger monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/engine"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	LedgerPath        string
	Year              int
	StartingRoom      float64
	InstitutionFilter string
	Interval          time.Duration
	Addr              string
	EventsBuffer      int
}

// Snapshot is a compact simulation state for status/event payloads.
type Snapshot struct {
	At                 time.Time `json:"at"`
	Transactions       int       `json:"transactions"`
	TotalContributions float64   `json:"total_contributions"`
	TotalWithdrawals   float64   `json:"total_withdrawals"`
	CurrentExcess      float64   `json:"current_excess"`
	PeakExcess         float64   `json:"peak_excess"`
	TotalPenalty       float64   `json:"total_penalty"`
	AffectedMonths     int       `json:"affected_months"`
	RemainingRoom      float64   `json:"remaining_room"`
	NextYearRoom       float64   `json:"next_year_room"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Transactions       int     `json:"transactions"`
	TotalContributions float64 `json:"total_contributions"`
	TotalWithdrawals   float64 `json:"total_withdrawals"`
	CurrentExcess      float64 `json:"current_excess"`
	TotalPenalty       float64 `json:"total_penalty"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.TotalContributions == 0 &&
		d.TotalWithdrawals == 0 &&
		d.CurrentExcess == 0 &&
		d.TotalPenalty == 0
}

// Event is emitted whenever the simulated ledger state updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt         time.Time `json:"started_at"`
	LastPollAt        time.Time `json:"last_poll_at"`
	PollIntervalSec   int       `json:"poll_interval_sec"`
	PollCount         int64     `json:"poll_count"`
	LedgerPath        string    `json:"ledger_path"`
	Year              int       `json:"year"`
	InstitutionFilter string    `json:"institution_filter,omitempty"`
	Summary           Snapshot  `json:"summary"`
	LastError         string    `json:"last_error,omitempty"`
	EventCount        int       `json:"event_count"`
	SubscriberCount   int       `json:"subscriber_count"`
}

// ledgerMeta identifies one on-disk state of the ledger database. Polls
// whose meta matches the previous poll skip the reload entirely. The WAL
// sibling is included because committed writes can land there before the
// main file changes.
type ledgerMeta struct {
	Size       int64
	ModTimeNS  int64
	WalSize    int64
	WalModTime int64
	Exists     bool
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	lastMeta    ledgerMeta
	lastResult  model.SimulationResult
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/result", s.handleResult)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	meta := statLedger(s.cfg.LedgerPath)

	s.mu.RLock()
	unchanged := s.hasSnapshot && meta == s.lastMeta
	s.mu.RUnlock()

	if unchanged {
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		return
	}

	txs, err := s.loadLedger()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("tfsaroom daemon poll error: %v", err)
		return
	}

	if s.cfg.InstitutionFilter != "" {
		txs = engine.FilterByInstitution(txs, s.cfg.InstitutionFilter)
	}

	res := engine.Simulate(s.cfg.Year, s.cfg.StartingRoom, txs)
	snap := snapshotFromResult(res, len(txs), now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastMeta = meta
	s.lastResult = res
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "ledger_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// loadLedger reads every stored transaction. A missing database is an empty
// ledger, not an error, so the daemon can start before the first `add`.
func (s *Service) loadLedger() ([]model.Transaction, error) {
	if _, err := os.Stat(s.cfg.LedgerPath); os.IsNotExist(err) {
		return nil, nil
	}

	ledger, err := store.Open(s.cfg.LedgerPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = ledger.Close() }()

	return ledger.LoadTransactions()
}

func statLedger(path string) ledgerMeta {
	info, err := os.Stat(path)
	if err != nil {
		return ledgerMeta{}
	}
	meta := ledgerMeta{
		Size:      info.Size(),
		ModTimeNS: info.ModTime().UnixNano(),
		Exists:    true,
	}
	if wal, err := os.Stat(path + "-wal"); err == nil {
		meta.WalSize = wal.Size()
		meta.WalModTime = wal.ModTime().UnixNano()
	}
	return meta
}

func snapshotFromResult(res model.SimulationResult, txCount int, at time.Time) Snapshot {
	return Snapshot{
		At:                 at,
		Transactions:       txCount,
		TotalContributions: res.TotalContributions,
		TotalWithdrawals:   res.TotalWithdrawals,
		CurrentExcess:      res.CurrentExcess,
		PeakExcess:         res.PeakExcess,
		TotalPenalty:       res.TotalPenalty,
		AffectedMonths:     res.AffectedMonths,
		RemainingRoom:      res.RemainingRoom,
		NextYearRoom:       res.NextYearRoom,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions:       curr.Transactions - prev.Transactions,
		TotalContributions: curr.TotalContributions - prev.TotalContributions,
		TotalWithdrawals:   curr.TotalWithdrawals - prev.TotalWithdrawals,
		CurrentExcess:      curr.CurrentExcess - prev.CurrentExcess,
		TotalPenalty:       curr.TotalPenalty - prev.TotalPenalty,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:         s.startedAt,
		LastPollAt:        s.lastPollAt,
		PollIntervalSec:   int(s.cfg.Interval.Seconds()),
		PollCount:         s.pollCount,
		LedgerPath:        s.cfg.LedgerPath,
		Year:              s.cfg.Year,
		InstitutionFilter: s.cfg.InstitutionFilter,
		Summary:           s.snapshot,
		LastError:         s.lastError,
		EventCount:        len(s.events),
		SubscriberCount:   len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleResult(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	has := s.hasSnapshot
	res := s.lastResult
	s.mu.RUnlock()

	if !has {
		http.Error(w, "no simulation yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultPayload(res))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
