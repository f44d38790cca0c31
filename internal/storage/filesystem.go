package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)

// SanitizeName replaces characters unsafe for filesystem paths.
// Allows alphanumeric, dots, and hyphens. Replaces everything else with underscore.
func SanitizeName(name string) string {
	return unsafePathChars.ReplaceAllString(name, "_")
}

// RunDirPath generates a consistent output directory path for a run.
// Format: {baseDir}/{stage}_{YYYYMMDD}_{HHMMSS}
func RunDirPath(baseDir, stage string, startedAt time.Time) string {
	timestamp := startedAt.Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s", SanitizeName(stage), timestamp))
}

// CreateRunDir creates a run output directory and returns its path
func CreateRunDir(baseDir, stage string, startedAt time.Time) (string, error) {
	path := RunDirPath(baseDir, stage, startedAt)
	if err := EnsureDir(path); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
