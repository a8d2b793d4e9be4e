package snapshot

import (
	"testing"
	"time"

	"github.com/jimezsa/horizons/internal/models"
)

func job(id string, scraped time.Time) models.Job {
	return models.Job{
		ID:        id,
		Title:     "Job " + id,
		Company:   "Acme",
		URL:       "https://acme.example/" + id,
		ScrapedAt: models.NewTimestamp(scraped),
		Source:    "acme",
	}
}

func ids(jobs []models.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		value string
		want  Policy
	}{
		{"", PolicyReplace},
		{"replace", PolicyReplace},
		{"UNION", PolicyUnion},
	}
	for _, tc := range cases {
		got, err := ParsePolicy(tc.value)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) error = %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePolicy(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
	if _, err := ParsePolicy("wholesale"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestCollapseLaterWins(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	early := job("dup", base)
	late := job("dup", base.Add(time.Hour))
	late.Title = "Later Observation"

	out := Collapse([]models.Job{early, job("other", base), late})
	if len(out) != 2 {
		t.Fatalf("expected 2 jobs after collapse, got %d", len(out))
	}
	for _, j := range out {
		if j.ID == "dup" && j.Title != "Later Observation" {
			t.Fatalf("expected later duplicate to win, got %+v", j)
		}
	}
}

func TestMergeReplaceIsExactlyFresh(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	previous := []models.Job{job("old", base.Add(-24 * time.Hour))}
	fresh := []models.Job{job("a", base), job("b", base.Add(time.Minute))}

	out := Merge(PolicyReplace, previous, fresh)
	if len(out) != 2 {
		t.Fatalf("expected 2 jobs, got %v", ids(out))
	}
	for _, j := range out {
		if j.ID == "old" {
			t.Fatalf("replace policy retained a previous-only job")
		}
	}
}

func TestMergeReplaceEmptyFreshYieldsEmpty(t *testing.T) {
	previous := []models.Job{job("old", time.Now().UTC())}
	out := Merge(PolicyReplace, previous, nil)
	if len(out) != 0 {
		t.Fatalf("expected empty snapshot, got %v", ids(out))
	}
}

func TestMergeUnionKeepsUnseenPrevious(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	previous := []models.Job{job("abc", base.Add(-24 * time.Hour))}

	out := Merge(PolicyUnion, previous, nil)
	if len(out) != 1 || out[0].ID != "abc" {
		t.Fatalf("union with empty fresh should return previous, got %v", ids(out))
	}
}

func TestMergeUnionFreshWinsPerID(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := job("abc", base.Add(-24*time.Hour))
	refreshed := job("abc", base)
	refreshed.Title = "Refreshed"

	out := Merge(PolicyUnion, []models.Job{prev, job("stale", base.Add(-48 * time.Hour))}, []models.Job{refreshed})
	if len(out) != 2 {
		t.Fatalf("expected 2 jobs, got %v", ids(out))
	}
	for _, j := range out {
		if j.ID == "abc" && j.Title != "Refreshed" {
			t.Fatalf("expected fresh record to replace previous for same id")
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	previous := []models.Job{job("a", base), job("b", base)}
	fresh := []models.Job{job("a", base.Add(time.Hour)), job("b", base.Add(time.Hour))}

	for _, policy := range []Policy{PolicyReplace, PolicyUnion} {
		out := Merge(policy, previous, fresh)
		if len(out) != 2 {
			t.Fatalf("%s: expected same count, got %v", policy, ids(out))
		}
		for _, j := range out {
			if !j.ScrapedAt.Time.Equal(base.Add(time.Hour)) {
				t.Fatalf("%s: expected scraped_at updated to fresh batch, got %v", policy, j.ScrapedAt)
			}
		}
	}
}

func TestMergeOrderedByRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newest := job("newest", base.Add(2*time.Hour))
	oldest := job("oldest", base)

	posted := job("posted-wins", base.Add(time.Hour))
	stamp := models.NewTimestamp(base.Add(3 * time.Hour))
	posted.PostedAt = &stamp

	out := Merge(PolicyUnion, nil, []models.Job{oldest, newest, posted})
	want := []string{"posted-wins", "newest", "oldest"}
	got := ids(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func TestMergeTieBrokenByID(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := Merge(PolicyReplace, nil, []models.Job{job("bbb", base), job("aaa", base)})
	if out[0].ID != "aaa" || out[1].ID != "bbb" {
		t.Fatalf("expected id tiebreak, got %v", ids(out))
	}
}
