package source

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverFiles walks root and collects every CSV file under it.
// Unreadable entries are skipped, not fatal. A missing root yields an empty
// result. WalkDir visits lexically, so results come back in path order.
func DiscoverFiles(root string) ([]DiscoveredFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		// A single file works too, so `import` accepts either form.
		if isCSV(root) {
			return []DiscoveredFile{{Path: root, SizeBytes: info.Size(), ModTime: info.ModTime()}}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || !isCSV(path) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		files = append(files, DiscoveredFile{
			Path:      path,
			SizeBytes: fi.Size(),
			ModTime:   fi.ModTime(),
		})
		return nil
	})

	return files, err
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
