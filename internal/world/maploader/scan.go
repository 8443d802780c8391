package maploader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MapEntry is a map file found by ScanMaps.
type MapEntry struct {
	Name string // File name without extension
	Path string
}

// ScanMaps lists the map files in dir, sorted by name. Palette files and
// hidden files are skipped.
func ScanMaps(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		lower := strings.ToLower(name)
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(lower, ".json") {
			continue
		}
		if strings.Contains(lower, "palette") || lower == "config.json" {
			continue
		}

		maps = append(maps, MapEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps, nil
}

// Resolve returns path itself when it is a file, or the first map in it when
// it is a directory.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	maps, err := ScanMaps(path)
	if err != nil {
		return "", err
	}
	if len(maps) == 0 {
		return "", fmt.Errorf("no maps found in %s", path)
	}
	return maps[0].Path, nil
}
