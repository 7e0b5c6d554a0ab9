package cra

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchLimits(t *testing.T) {
	srv := feedServer(t, http.StatusOK,
		`{"updated":"2025-11-20","limits":{"2025":7000,"2026":"7,000","2027":"$7500"}}`)

	c := NewClient(srv.URL)
	if c == nil {
		t.Fatal("NewClient returned nil for a valid URL")
	}

	feed, err := c.FetchLimits(context.Background())
	if err != nil {
		t.Fatalf("FetchLimits: %v", err)
	}
	if feed.Updated != "2025-11-20" {
		t.Errorf("Updated = %q, want 2025-11-20", feed.Updated)
	}
	want := map[int]float64{2025: 7000, 2026: 7000, 2027: 7500}
	if len(feed.Limits) != len(want) {
		t.Fatalf("got %d limits, want %d", len(feed.Limits), len(want))
	}
	for year, amount := range want {
		if math.Abs(feed.Limits[year]-amount) > 1e-9 {
			t.Errorf("limit[%d] = %v, want %v", year, feed.Limits[year], amount)
		}
	}
	if feed.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
	if years := feed.Years(); len(years) != 3 || years[0] != 2025 || years[2] != 2027 {
		t.Errorf("Years() = %v, want ascending 2025..2027", years)
	}
}

func TestFetchLimitsSkipsJunkEntries(t *testing.T) {
	srv := feedServer(t, http.StatusOK,
		`{"limits":{"2025":7000,"someday":5000,"2026":-1,"2027":"n/a"}}`)

	feed, err := NewClient(srv.URL).FetchLimits(context.Background())
	if err != nil {
		t.Fatalf("FetchLimits: %v", err)
	}
	if len(feed.Limits) != 1 {
		t.Fatalf("got %d limits, want only the clean 2025 entry: %v", len(feed.Limits), feed.Limits)
	}
	if feed.Limits[2025] != 7000 {
		t.Errorf("limit[2025] = %v, want 7000", feed.Limits[2025])
	}
}

func TestFetchLimitsNoUsableEntries(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `{"updated":"x","limits":{}}`)

	_, err := NewClient(srv.URL).FetchLimits(context.Background())
	if !errors.Is(err, ErrBadPayload) {
		t.Errorf("err = %v, want ErrBadPayload", err)
	}
}

func TestFetchLimitsBadJSON(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `this is not a feed`)

	_, err := NewClient(srv.URL).FetchLimits(context.Background())
	if !errors.Is(err, ErrBadPayload) {
		t.Errorf("err = %v, want ErrBadPayload", err)
	}
}

func TestFetchLimitsServerError(t *testing.T) {
	srv := feedServer(t, http.StatusInternalServerError, `oops`)

	_, err := NewClient(srv.URL).FetchLimits(context.Background())
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Errorf("err = %v, want ErrFeedUnavailable", err)
	}
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	if NewClient("") != nil {
		t.Error("empty URL should yield nil client")
	}
	if NewClient("   ") != nil {
		t.Error("blank URL should yield nil client")
	}
	if NewClient("ftp://example.com/limits.json") != nil {
		t.Error("non-http URL should yield nil client")
	}
	if NewClient("https://example.com/limits.json") == nil {
		t.Error("https URL should yield a client")
	}
}
