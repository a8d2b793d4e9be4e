package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/horizons/internal/models"
)

func sampleJob() models.Job {
	location := "Amarillo, TX"
	salary := "$25 / hour"
	return models.Job{
		ID:        "yellowhouse-1-welder",
		Title:     "Welder",
		Company:   "Yellowhouse Machinery",
		Location:  &location,
		Salary:    &salary,
		URL:       "https://careers.yhmc.com/job/1",
		ScrapedAt: models.NewTimestamp(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Source:    "yellowhouse",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, []models.Job{sampleJob()}, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var jobs []models.Job
	if err := json.Unmarshal(buf.Bytes(), &jobs); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "yellowhouse-1-welder" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, []models.Job{sampleJob()}, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,source,title") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-06-01T12:00:00") {
		t.Fatalf("expected wire-format timestamp, got %q", lines[1])
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, []models.Job{sampleJob()}, FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Welder") || !strings.Contains(out, "Amarillo, TX") {
		t.Fatalf("unexpected table output: %q", out)
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No results.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}
