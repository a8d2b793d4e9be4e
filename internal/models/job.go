package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for snapshot timestamps: naive UTC with
// second precision and no zone suffix. Every source stamps the same way so
// cross-source ordering stays meaningful.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time with the snapshot wire format.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC time truncated to seconds.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

// NewTimestamp normalizes an arbitrary time into the snapshot convention.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	layouts := []string{TimeLayout, time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC().Truncate(time.Second)
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp: %s", raw)
}

// Job is the canonical posting persisted in the snapshot.
type Job struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	Location  *string    `json:"location"`
	Salary    *string    `json:"salary"`
	URL       string     `json:"url"`
	ScrapedAt Timestamp  `json:"scraped_at"`
	Source    string     `json:"source"`
	PostedAt  *Timestamp `json:"posted_at,omitempty"`
}

// LocationString returns the location or "" when null.
func (j Job) LocationString() string {
	if j.Location == nil {
		return ""
	}
	return *j.Location
}

// SalaryString returns the salary or "" when null.
func (j Job) SalaryString() string {
	if j.Salary == nil {
		return ""
	}
	return *j.Salary
}

// RecencyKey is the ordering field for union merges: posting recency when
// the board exposes one, otherwise the observation time.
func (j Job) RecencyKey() time.Time {
	if j.PostedAt != nil && !j.PostedAt.IsZero() {
		return j.PostedAt.Time
	}
	return j.ScrapedAt.Time
}

// RawJob is a source adapter's native output before normalization. Only
// Title and URL are expected everywhere; the rest is whatever the board
// happens to expose.
type RawJob struct {
	Title    string
	NativeID string
	URL      string
	Location string
	City     string
	State    string
	Postal   string
	Salary   string
	Posted   string
	JobType  string
}
