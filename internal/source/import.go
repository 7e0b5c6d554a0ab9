package source

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
)

// ProgressFunc is called during a directory import to report progress.
// current is the number of files processed so far, total is the file count.
type ProgressFunc func(current, total int)

// ImportFile reads and normalizes one CSV file.
func ImportFile(path string) ImportResult {
	f, err := os.Open(path) //nolint:gosec // path comes from discovery or the CLI
	if err != nil {
		return ImportResult{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	res, err := Normalize(f)
	return ImportResult{Path: path, NormalizeResult: res, Err: err}
}

// ImportDir discovers every CSV under root and normalizes them on a bounded
// worker pool. Per-file results keep discovery order so merged output is
// deterministic regardless of worker scheduling.
func ImportDir(root string, progressFn ProgressFunc) (*DirImportResult, error) {
	files, err := DiscoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	result := &DirImportResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]ImportResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = ImportFile(files[idx].Path)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	result.Files = results
	for _, fr := range results {
		if fr.Err != nil {
			result.FileErrors++
			continue
		}
		result.Admitted = append(result.Admitted, fr.Admitted...)
		result.Rejected += len(fr.Rejections)
	}

	return result, nil
}
