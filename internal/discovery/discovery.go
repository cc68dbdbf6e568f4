// Package discovery finds the media files a run will visit.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	errs "github.com/trimux/trimux/internal/errors"
	"github.com/trimux/trimux/internal/util"
)

// Logger receives discovery progress.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// Result contains discovered files with metadata.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindMediaFiles finds media files directly in a directory, sorted
// alphabetically by filename. Hidden files and leftover transcode
// artifacts are skipped; artifacts are inputs to a resumed decision,
// not sources.
func FindMediaFiles(inputDir string) ([]string, error) {
	result, err := FindMediaFilesWithLogging(inputDir, nil)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// FindMediaFilesWithLogging finds media files and logs what it found.
func FindMediaFilesWithLogging(inputDir string, logger Logger) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errs.NewPathError("directory does not exist: " + inputDir)
	}
	if !info.IsDir() {
		return nil, errs.NewPathError(inputDir + " is not a directory")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errs.NewIOError("cannot read directory "+inputDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsMediaFile(fullPath) && !util.IsOutputArtifact(fullPath) {
			result.Files = append(result.Files, fullPath)
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, errs.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	if logger != nil {
		logDiscoveredFiles(result.Files, logger)
	}

	return result, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(files []string, logger Logger) {
	logger.Info("Found %d media file(s)", len(files))

	maxToLog := min(5, len(files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("  %s", filepath.Base(files[i]))
	}
	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
