package source

import (
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// Rejection records why a single input line was not admitted.
type Rejection struct {
	Line   int // 1-based line number in the source text
	Reason string
}

// NormalizeResult holds the outcome of normalizing one batch of raw lines.
// Rejections never abort a batch; every line is judged independently.
type NormalizeResult struct {
	Admitted      []model.Transaction
	Rejections    []Rejection
	HeaderSkipped bool
}

// ImportResult holds the outcome of importing a single CSV file.
// Err reports open/read failures only; per-line problems land in Rejections.
type ImportResult struct {
	Path string
	NormalizeResult
	Err error
}

// DiscoveredFile represents a CSV file found during directory scanning.
type DiscoveredFile struct {
	Path      string
	SizeBytes int64
	ModTime   time.Time
}

// DirImportResult merges the per-file results of a directory import.
type DirImportResult struct {
	Files      []ImportResult // in discovery (path) order
	TotalFiles int
	FileErrors int
	Admitted   []model.Transaction
	Rejected   int
}
