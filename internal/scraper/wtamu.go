package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	wtamuBase     = "https://tamus.wd1.myworkdayjobs.com"
	wtamuSite     = "WTAMU_External"
	wtamuMaxPages = 10
)

var (
	wtamuStartURLs = []string{
		wtamuBase + "/en-US/" + wtamuSite,
		wtamuBase + "/" + wtamuSite,
	}
	wtamuReqIDRe    = regexp.MustCompile(`\b(R-\d+(?:-\d+)?)\b`)
	wtamuLocLabelRe = regexp.MustCompile(`(?i)^locations?\s*`)
)

// WTAMU scrapes the West Texas A&M University board on Workday. Workday
// ships an empty shell to plain clients, so every page goes through
// headless Chrome; the en-US route is tried first with the bare site route
// as fallback.
type WTAMU struct {
	renderer *browser.Renderer
}

func NewWTAMU(renderer *browser.Renderer) *WTAMU {
	return &WTAMU{renderer: renderer}
}

func (w *WTAMU) Name() string {
	return SourceWTAMU
}

func (w *WTAMU) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceWTAMU,
		Company: "West Texas A&M University",
		BaseURL: wtamuBase,
	}
}

func (w *WTAMU) Fetch(ctx context.Context) ([]models.RawJob, error) {
	var jobs []models.RawJob
	var lastErr error
	for _, start := range wtamuStartURLs {
		for page := 1; page <= wtamuMaxPages; page++ {
			target := start
			if page > 1 {
				target = fmt.Sprintf("%s?page=%d", start, page)
			}
			raw, err := w.renderer.Render(ctx, target, browser.RenderOptions{
				WaitVisible: `a[data-automation-id="jobTitle"]`,
				Settle:      time.Second,
			})
			if err != nil {
				lastErr = err
				break
			}
			doc, err := docFromHTML(raw)
			if err != nil {
				lastErr = err
				break
			}
			pageJobs := parseWTAMU(doc)
			if len(pageJobs) == 0 {
				break
			}
			jobs = append(jobs, pageJobs...)
		}
		if len(jobs) > 0 {
			break
		}
	}
	if len(jobs) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return dedupeWTAMU(jobs), nil
}

func parseWTAMU(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	doc.Find(`a[data-automation-id="jobTitle"]`).Each(func(_ int, anchor *goquery.Selection) {
		title := cleanText(anchor.Text())
		if title == "" {
			return
		}
		href := strings.TrimSpace(anchor.AttrOr("href", ""))

		card := anchor.Closest("li")
		location := wtamuLocLabelRe.ReplaceAllString(
			cleanText(card.Find(`[data-automation-id="locations"]`).First().Text()), "")

		// The requisition id lives in the subtitle row; fall back to the
		// last path segment of the link.
		nativeID := wtamuReqID(cleanText(card.Find(`ul[data-automation-id="subtitle"] li`).First().Text()))
		if nativeID == "" && href != "" {
			parts := strings.Split(strings.TrimRight(href, "/"), "/")
			nativeID = parts[len(parts)-1]
		}

		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: nativeID,
			URL:      wtamuJobURL(href),
			Location: location,
		})
	})
	return jobs
}

func wtamuReqID(text string) string {
	if m := wtamuReqIDRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// wtamuJobURL canonicalizes a Workday listing href into a standalone
// detail-page URL. List pages render links captured by client-side routing
// that open a sidebar on /jobs; query and fragment are dropped to avoid
// those stateful routes.
func wtamuJobURL(href string) string {
	h := strings.TrimSpace(strings.TrimPrefix(href, "./"))
	if h == "" {
		return wtamuStartURLs[0]
	}

	var u string
	switch {
	case strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://"):
		u = h
	case strings.HasPrefix(h, "//"):
		u = "https:" + h
	case strings.HasPrefix(h, "/"):
		u = wtamuBase + h
	case strings.HasPrefix(h, "job/"):
		u = wtamuBase + "/en-US/" + wtamuSite + "/" + h
	default:
		u = wtamuBase + "/" + h
	}

	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return u
}

func dedupeWTAMU(jobs []models.RawJob) []models.RawJob {
	seen := make(map[string]bool, len(jobs))
	uniq := jobs[:0]
	for _, job := range jobs {
		key := job.NativeID + "|" + job.URL
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, job)
	}
	return uniq
}
