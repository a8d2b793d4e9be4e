package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/snapshot"
)

type staticProvider struct {
	jobs []models.Job
	err  error
}

func (p *staticProvider) Jobs(ctx context.Context) ([]models.Job, error) {
	return p.jobs, p.err
}

func strptr(s string) *string { return &s }

func sampleJobs() []models.Job {
	return []models.Job{
		{
			ID:        "yellowhouse-1-diesel-technician",
			Title:     "Diesel Technician",
			Company:   "Yellowhouse Machinery",
			Location:  strptr("Amarillo, TX"),
			Salary:    strptr("$25 / hour"),
			URL:       "https://careers.yhmc.com/job/1",
			ScrapedAt: models.Now(),
			Source:    "yellowhouse",
		},
		{
			ID:        "wtamu-r-1-registered-nurse",
			Title:     "Registered Nurse",
			Company:   "West Texas A&M University",
			Location:  strptr("Canyon, TX"),
			URL:       "https://example.com/r-1",
			ScrapedAt: models.Now(),
			Source:    "wtamu",
		},
	}
}

func newTestServer(p Provider) *Server {
	return New(p, zerolog.Nop())
}

func TestIndexShowsJobs(t *testing.T) {
	srv := newTestServer(&staticProvider{jobs: sampleJobs()})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Diesel Technician") || !strings.Contains(body, "Registered Nurse") {
		t.Fatalf("expected both jobs in page")
	}
	if !strings.Contains(body, "2 jobs loaded") {
		t.Fatalf("expected job count in page")
	}
}

func TestIndexNoData(t *testing.T) {
	srv := newTestServer(&staticProvider{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if !strings.Contains(rec.Body.String(), "No jobs available yet") {
		t.Fatalf("expected empty-data notice")
	}
}

func TestIndexNoResults(t *testing.T) {
	srv := newTestServer(&staticProvider{jobs: sampleJobs()})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/?q=astronaut", nil))

	if !strings.Contains(rec.Body.String(), "No results match your filters") {
		t.Fatalf("expected no-results notice")
	}
}

func TestIndexLoadError(t *testing.T) {
	srv := newTestServer(&staticProvider{err: errors.New("disk gone")})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if !strings.Contains(rec.Body.String(), "Failed to load jobs") {
		t.Fatalf("expected load error notice")
	}
}

func TestApplyFilters(t *testing.T) {
	jobs := sampleJobs()

	if got := applyFilters(jobs, Filters{Keyword: "nurse"}); len(got) != 1 || got[0].Title != "Registered Nurse" {
		t.Fatalf("keyword filter failed: %+v", got)
	}
	if got := applyFilters(jobs, Filters{Company: "Yellowhouse Machinery"}); len(got) != 1 {
		t.Fatalf("company filter failed: %+v", got)
	}
	if got := applyFilters(jobs, Filters{Company: "yellowhouse machinery"}); len(got) != 0 {
		t.Fatalf("company filter must be exact: %+v", got)
	}
	if got := applyFilters(jobs, Filters{Location: "canyon"}); len(got) != 1 {
		t.Fatalf("location filter failed: %+v", got)
	}
	if got := applyFilters(jobs, Filters{Keyword: "nurse", Location: "amarillo"}); len(got) != 0 {
		t.Fatalf("filters must combine with AND: %+v", got)
	}
}

func TestCompanyOptionsSortedUnique(t *testing.T) {
	jobs := append(sampleJobs(), sampleJobs()...)
	got := companyOptions(jobs)
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %v", got)
	}
	if got[0] != "West Texas A&M University" {
		t.Fatalf("expected case-insensitive sort, got %v", got)
	}
}

func TestAPIJobsFiltered(t *testing.T) {
	srv := newTestServer(&staticProvider{jobs: sampleJobs()})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/jobs?company=Yellowhouse+Machinery", nil))

	if rec.Code != 200 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var jobs []models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("bad json response: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Source != "yellowhouse" {
		t.Fatalf("unexpected filtered jobs: %+v", jobs)
	}
}

func TestAPIJobsEmptyIsArray(t *testing.T) {
	srv := newTestServer(&staticProvider{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/jobs", nil))

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestFileProviderTracksMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := snapshot.Save(path, sampleJobs()[:1]); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	provider := NewFileProvider(path)
	jobs, err := provider.Jobs(context.Background())
	if err != nil || len(jobs) != 1 {
		t.Fatalf("unexpected first load: %d jobs, err %v", len(jobs), err)
	}

	if err := snapshot.Save(path, sampleJobs()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// Force a distinct mtime even on coarse filesystems.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	jobs, err = provider.Jobs(context.Background())
	if err != nil || len(jobs) != 2 {
		t.Fatalf("expected reload after mtime change: %d jobs, err %v", len(jobs), err)
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	provider := NewFileProvider(filepath.Join(t.TempDir(), "missing.json"))
	jobs, err := provider.Jobs(context.Background())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}
