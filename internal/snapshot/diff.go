package snapshot

import (
	"github.com/jimezsa/horizons/internal/identity"
	"github.com/jimezsa/horizons/internal/models"
)

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// UpdateStats captures stats for history updates.
type UpdateStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during the update.
func (s UpdateStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// key returns the dedupe key for a job: its canonical id, or a content hash
// for hand-edited files whose records never went through the resolver.
func key(job models.Job) (string, bool) {
	if job.ID != "" {
		return job.ID, true
	}
	if identity.Normalize(job.Title) == "" || identity.Normalize(job.Company) == "" {
		return "", false
	}
	return identity.ContentHash(job.Title, job.Company, job.LocationString()), true
}

// Diff returns jobs from newJobs whose id does not appear in seenJobs.
func Diff(newJobs []models.Job, seenJobs []models.Job) ([]models.Job, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newJobs),
		TotalSeen: len(seenJobs),
	}

	seenKeys := make(map[string]struct{}, len(seenJobs))
	for _, job := range seenJobs {
		k, ok := key(job)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[k] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newJobs))
	unseen := make([]models.Job, 0, len(newJobs))
	for _, job := range newJobs {
		k, ok := key(job)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[k]; exists {
			continue
		}
		newKeys[k] = struct{}{}
		if _, exists := seenKeys[k]; exists {
			continue
		}
		unseen = append(unseen, job)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Update appends unique input jobs into an existing history file.
// Existing entries win collisions.
func Update(existing []models.Job, input []models.Job) ([]models.Job, UpdateStats) {
	stats := UpdateStats{
		TotalSeen:  len(existing),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existing)+len(input))
	out := make([]models.Job, 0, len(existing)+len(input))

	for _, job := range existing {
		k, ok := key(job)
		if !ok {
			stats.InvalidSeen++
			out = append(out, job)
			continue
		}
		if _, exists := keys[k]; exists {
			continue
		}
		keys[k] = struct{}{}
		out = append(out, job)
	}

	for _, job := range input {
		k, ok := key(job)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[k]; exists {
			continue
		}
		keys[k] = struct{}{}
		out = append(out, job)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
