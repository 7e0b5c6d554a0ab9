package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FeedState records the last successful limits-feed refresh.
type FeedState struct {
	FetchedAt time.Time `json:"fetched_at"`
	Updated   string    `json:"updated,omitempty"` // feed's own publication stamp
	Years     int       `json:"years"`
	URL       string    `json:"url,omitempty"`
}

// FeedStatePath returns the feed metadata file under the cache dir.
func FeedStatePath() string {
	return filepath.Join(CacheDir(), "feed.json")
}

// LoadFeedState reads the cached feed metadata. Any error yields a zero
// state, meaning the feed has never been fetched.
func LoadFeedState() FeedState {
	data, err := os.ReadFile(FeedStatePath())
	if err != nil {
		return FeedState{}
	}
	var st FeedState
	if err := json.Unmarshal(data, &st); err != nil {
		return FeedState{}
	}
	return st
}

// SaveFeedState writes feed metadata to the cache dir.
func SaveFeedState(st FeedState) error {
	if err := os.MkdirAll(CacheDir(), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding feed state: %w", err)
	}
	if err := os.WriteFile(FeedStatePath(), data, 0o600); err != nil {
		return fmt.Errorf("writing feed state: %w", err)
	}
	return nil
}
