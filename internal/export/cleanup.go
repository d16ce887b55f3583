package export

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storyshort/internal/logging"
)

const workDirPrefix = ".export-"

// CleanupResult lists the work directories a cleanup pass removed or failed to
// remove.
type CleanupResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its removal error.
type CleanupError struct {
	Path  string
	Error error
}

// cleanWorkDirs removes export work directories left in outputDir by runs
// that never reached their deferred cleanup. The caller must hold the export
// lock, so no directory it sees can belong to a live export.
func cleanWorkDirs(outputDir string, logger *slog.Logger) CleanupResult {
	result := CleanupResult{}
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return result
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: outputDir, Error: err})
		}
		return result
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), workDirPrefix) {
			continue
		}
		path := filepath.Join(outputDir, entry.Name())
		var age time.Duration
		if info, err := entry.Info(); err == nil {
			age = time.Since(info.ModTime())
		}
		if err := os.RemoveAll(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			logging.WarnWithContext(logger, "failed to remove leftover export directory", "export_cleanup_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check output_dir permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger == nil {
			continue
		}
		logger.Info("removed leftover export directory",
			logging.String("path", path),
			logging.Duration("age", age),
			logging.String(logging.FieldEventType, "export_cleanup"),
		)
	}
	return result
}
