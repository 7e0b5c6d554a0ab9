// Package cra fetches the published TFSA annual-limit feed.
package cra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrFeedUnavailable indicates the feed could not be reached or served an error.
	ErrFeedUnavailable = errors.New("cra: limit feed unavailable")
	// ErrBadPayload indicates the feed responded but the payload was unusable.
	ErrBadPayload = errors.New("cra: malformed limit feed")
)

// Client fetches annual limits from a published JSON feed.
type Client struct {
	feedURL string
	http    *http.Client
}

// NewClient creates a client for the given feed URL.
// Returns nil if the URL is empty or not http(s).
func NewClient(feedURL string) *Client {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil
	}
	if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
		return nil
	}
	return &Client{
		feedURL: feedURL,
		http:    &http.Client{},
	}
}

// FetchLimits downloads and parses the limit feed. Entries with an
// unparsable year or a non-positive amount are skipped; a feed with no
// usable entries at all is reported as ErrBadPayload.
func (c *Client) FetchLimits(ctx context.Context) (*LimitFeed, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	var raw feedResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	limits := make(map[int]float64, len(raw.Limits))
	for yearStr, rawAmount := range raw.Limits {
		year, err := strconv.Atoi(strings.TrimSpace(yearStr))
		if err != nil {
			continue
		}
		amount, ok := parseAmount(rawAmount)
		if !ok || amount <= 0 {
			continue
		}
		limits[year] = amount
	}
	if len(limits) == 0 {
		return nil, fmt.Errorf("%w: no usable limit entries", ErrBadPayload)
	}

	return &LimitFeed{
		Updated:   raw.Updated,
		Limits:    limits,
		FetchedAt: time.Now(),
	}, nil
}

// get performs the feed GET request and returns the response body.
func (c *Client) get(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cra: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/tfsaroom/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("cra: reading response: %w", err)
	}
	return body, nil
}

// parseAmount parses the polymorphic amount field.
// Handles numbers (7000, 7000.0) and strings ("7000", "7,000", "$7000").
func parseAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}

	return 0, false
}
