// Package normalize converts raw, board-specific records into canonical
// jobs. Policy that varies per board (base URL, boilerplate suffixes,
// assumed state) lives in Options; everything else is uniform.
package normalize

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jimezsa/horizons/internal/identity"
	"github.com/jimezsa/horizons/internal/models"
)

// Options carries the static labels and local policies owned by one source
// adapter.
type Options struct {
	Source  string
	Company string

	// BaseURL resolves relative links. Absolute links pass through
	// untouched, never percent-decoded or rewritten.
	BaseURL string

	// StripSuffixes are boilerplate tokens removed from the end of
	// free-text locations, e.g. ", USA".
	StripSuffixes []string

	// AssumeState appends ", <state>" to locations that carry no state
	// suffix. Only set for boards whose operating state is known, e.g. the
	// ANB board publishes region names without "TX".
	AssumeState string
}

var stateSuffixRe = regexp.MustCompile(`,\s*[A-Z]{2}$`)

// Job maps one raw record into a canonical job. Records whose title, URL,
// or the adapter's company label clean to empty are rejected: the second
// return value is false and nothing is emitted.
func (o Options) Job(raw models.RawJob) (models.Job, bool) {
	title := Clean(raw.Title)
	company := Clean(o.Company)
	if title == "" || company == "" {
		return models.Job{}, false
	}

	link := AbsoluteURL(o.BaseURL, strings.TrimSpace(raw.URL))
	if link == "" {
		return models.Job{}, false
	}

	location := o.location(raw)

	job := models.Job{
		ID:        identity.Resolve(o.Source, company, raw, location),
		Title:     title,
		Company:   company,
		URL:       link,
		ScrapedAt: models.Now(),
		Source:    o.Source,
	}
	if location != "" {
		job.Location = &location
	}
	if salary := Clean(raw.Salary); salary != "" {
		job.Salary = &salary
	}
	if posted, err := ParsePosted(raw.Posted); err == nil {
		ts := models.NewTimestamp(posted)
		job.PostedAt = &ts
	}
	return job, true
}

// location composes the best-effort "City, ST" form: structured components
// when the board exposes them, otherwise cleaned free text.
func (o Options) location(raw models.RawJob) string {
	if city := Clean(raw.City); city != "" {
		if state := Clean(raw.State); state != "" {
			return city + ", " + state
		}
		return city
	}

	loc := Clean(raw.Location)
	for _, suffix := range o.StripSuffixes {
		loc = strings.TrimSpace(strings.TrimSuffix(loc, suffix))
	}
	if loc == "" {
		return ""
	}
	if o.AssumeState != "" && !stateSuffixRe.MatchString(loc) {
		return loc + ", " + o.AssumeState
	}
	return loc
}

// Clean decodes HTML entities, replaces non-breaking spaces and collapses
// internal whitespace.
func Clean(value string) string {
	value = html.UnescapeString(value)
	value = strings.ReplaceAll(value, " ", " ")
	return strings.Join(strings.Fields(value), " ")
}

// AbsoluteURL resolves href against base. Already-absolute links and
// protocol-relative links are returned as-is.
func AbsoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if base == "" {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// ParsePosted accepts the ISO-ish date formats boards actually emit.
// Relative text like "vor 2 Tagen" is not parsed; it simply yields no
// posted_at and ordering falls back to scraped_at.
func ParsePosted(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05-0700",
		"1/2/2006",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported posted date: %s", value)
}
