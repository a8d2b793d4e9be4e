package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	ttuhscStartURL = "https://sjobs.brassring.com/TGnewUI/Search/Home/Home" +
		"?partnerid=25898&siteid=5283#Campus=HSC%20-%20Amarillo&keyWordSearch="

	ttuhscCardSel  = "div.liner.lightBorder"
	ttuhscTitleSel = "a.jobProperty.jobtitle"
)

// TTUHSC scrapes the Texas Tech University Health Sciences Center board on
// BrassRing, pre-filtered to the Amarillo campus through the URL fragment.
// BrassRing is an Angular app with no server-rendered fallback, so the
// listing always goes through headless Chrome.
type TTUHSC struct {
	renderer *browser.Renderer
}

func NewTTUHSC(renderer *browser.Renderer) *TTUHSC {
	return &TTUHSC{renderer: renderer}
}

func (t *TTUHSC) Name() string {
	return SourceTTUHSC
}

func (t *TTUHSC) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceTTUHSC,
		Company: "Texas Tech University Health Sciences Center",
		BaseURL: ttuhscStartURL,
	}
}

func (t *TTUHSC) Fetch(ctx context.Context) ([]models.RawJob, error) {
	raw, err := t.renderer.Render(ctx, ttuhscStartURL, browser.RenderOptions{
		WaitVisible: ttuhscCardSel + " " + ttuhscTitleSel,
		Settle:      2 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	doc, err := docFromHTML(raw)
	if err != nil {
		return nil, err
	}
	return parseTTUHSC(doc), nil
}

func parseTTUHSC(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	doc.Find(ttuhscCardSel).Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find(ttuhscTitleSel).First()
		title := cleanText(anchor.Text())
		if title == "" {
			return
		}
		target := strings.TrimSpace(anchor.AttrOr("href", ""))
		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: queryParam(target, "jobid"),
			URL:      target,
			Location: cleanText(card.Find("p.jobProperty.position1").First().Text()),
		})
	})

	// The campus filter in the URL fragment is applied client-side and can
	// silently fail, leaving every campus in the results. When no posting
	// mentions Amarillo at all the filter clearly did not apply, so drop
	// everything that is not an Amarillo location.
	amarillo := false
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Location), "amarillo") {
			amarillo = true
			break
		}
	}
	if !amarillo {
		filtered := jobs[:0]
		for _, job := range jobs {
			if strings.HasPrefix(strings.ToLower(job.Location), "amarillo") {
				filtered = append(filtered, job)
			}
		}
		jobs = filtered
	}
	return dedupeTTUHSC(jobs)
}

func dedupeTTUHSC(jobs []models.RawJob) []models.RawJob {
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
