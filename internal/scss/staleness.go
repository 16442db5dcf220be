package scss

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Norgate-AV/scssc/internal/asset"
)

// StalenessChecker compares modification times of a job's files
type StalenessChecker struct{}

// IsStale reports whether the destination is missing or strictly older than
// the source or any of deps. A missing source or dependency counts as stale
// so the compiler gets to report it.
func (StalenessChecker) IsStale(job asset.Job, deps []string) (bool, error) {
	dest, err := os.Stat(job.DestinationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat destination: %w", err)
	}

	destTime := dest.ModTime()
	for _, path := range inputs(job, deps) {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if destTime.Before(info.ModTime()) {
			return true, nil
		}
	}

	return false, nil
}

// ChangedSince reports whether the source or any of deps was modified after t.
// Files that do not exist are ignored until they appear. A whole-second mtime
// counts as changed when it falls in the same second as t, so an edit made
// right after t on a coarse filesystem is not missed.
func (StalenessChecker) ChangedSince(job asset.Job, deps []string, t time.Time) (bool, error) {
	for _, path := range inputs(job, deps) {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if modifiedAfter(info.ModTime(), t) {
			return true, nil
		}
	}

	return false, nil
}

// modifiedAfter compares mtime with t at the precision the filesystem stored
func modifiedAfter(mtime, t time.Time) bool {
	if mtime.Nanosecond() == 0 {
		return !mtime.Before(t.Truncate(time.Second))
	}

	return mtime.After(t)
}

func inputs(job asset.Job, deps []string) []string {
	paths := make([]string, 0, len(deps)+1)
	paths = append(paths, job.SourcePath)

	return append(paths, deps...)
}
