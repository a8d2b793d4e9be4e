// Package snapshot owns the canonical job list: durable persistence as a
// single JSON array and the merge policies that produce the next snapshot
// from a fresh batch.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/horizons/internal/models"
)

// Load reads the persisted snapshot. A missing, unreadable, or malformed
// file yields an empty snapshot so a run can always start from scratch; the
// error is advisory (nil for a simply-missing file) and callers may log it.
func Load(path string) ([]models.Job, error) {
	jobs, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Job{}, nil
		}
		return []models.Job{}, err
	}
	return jobs, nil
}

// Read reads a JSON array of jobs from path, erroring on missing or
// malformed files. Used where the caller asked for a specific file and
// silence would hide a typo.
func Read(path string) ([]models.Job, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Job{}, nil
	}

	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if jobs == nil {
		return []models.Job{}, nil
	}
	return jobs, nil
}

// Save replaces the snapshot wholesale: the array is written to a temp file
// in the target directory and renamed into place, so a concurrent reader
// never observes a half-written document.
func Save(path string, jobs []models.Job) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
