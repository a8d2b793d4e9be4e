package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/horizons/internal/models"
)

// Policy selects how a fresh batch combines with the previous snapshot.
type Policy string

const (
	// PolicyReplace discards the previous snapshot: the result is exactly
	// the fresh batch. The safer default when every enabled source runs in
	// each cycle; the pipeline's empty-snapshot guard protects it against
	// fully-failed runs.
	PolicyReplace Policy = "replace"

	// PolicyUnion keeps previous jobs that were not re-observed this run,
	// e.g. because a source was disabled or timed out.
	PolicyUnion Policy = "union"
)

// ParsePolicy validates a policy name from config or flags.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicyReplace, "":
		return PolicyReplace, nil
	case PolicyUnion:
		return PolicyUnion, nil
	default:
		return "", fmt.Errorf("unknown merge policy: %s", value)
	}
}

// Merge produces the next snapshot from the previous one and a fresh batch.
// Within fresh, later records win id collisions outright; fields are never
// merged. Merge is a pure function and never fails on empty input: an empty
// fresh batch degrades to previous under union and to empty under replace.
func Merge(policy Policy, previous []models.Job, fresh []models.Job) []models.Job {
	next := Collapse(fresh)

	if policy == PolicyUnion {
		seen := make(map[string]struct{}, len(next))
		for _, job := range next {
			seen[job.ID] = struct{}{}
		}
		for _, job := range previous {
			if _, ok := seen[job.ID]; ok {
				continue
			}
			seen[job.ID] = struct{}{}
			next = append(next, job)
		}
	}

	sortByRecency(next)
	return next
}

// Collapse removes id duplicates within one batch, keeping the
// later-produced record. Source execution order determines precedence.
func Collapse(jobs []models.Job) []models.Job {
	byID := make(map[string]int, len(jobs))
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if idx, ok := byID[job.ID]; ok {
			out[idx] = job
			continue
		}
		byID[job.ID] = len(out)
		out = append(out, job)
	}
	return out
}

// sortByRecency orders jobs newest-first by posting recency, falling back
// to observation time, with id as a deterministic tiebreak.
func sortByRecency(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i].RecencyKey(), jobs[j].RecencyKey()
		if !a.Equal(b) {
			return a.After(b)
		}
		return jobs[i].ID < jobs[j].ID
	})
}
