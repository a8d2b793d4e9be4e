package scraper

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	talonListURL     = "https://www.talonlpe.com/employment"
	teamEnginePrefix = "https://apply.teamengine.io/apply/"
)

// TalonLPE scrapes the employment page of Talon/LPE. Openings are a
// TeamEngine widget injected after page load, so the listing always goes
// through headless Chrome.
type TalonLPE struct {
	renderer *browser.Renderer
}

func NewTalonLPE(renderer *browser.Renderer) *TalonLPE {
	return &TalonLPE{renderer: renderer}
}

func (t *TalonLPE) Name() string {
	return SourceTalonLPE
}

func (t *TalonLPE) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceTalonLPE,
		Company: "Talon/LPE",
		BaseURL: talonListURL,
	}
}

func (t *TalonLPE) Fetch(ctx context.Context) ([]models.RawJob, error) {
	raw, err := t.renderer.Render(ctx, talonListURL, browser.RenderOptions{
		WaitVisible: `a[href^="` + teamEnginePrefix + `"]`,
		Settle:      time.Second,
	})
	if err != nil {
		return nil, err
	}
	doc, err := docFromHTML(raw)
	if err != nil {
		return nil, err
	}
	return parseTalonLPE(doc), nil
}

func parseTalonLPE(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	doc.Find(`a[href^="` + teamEnginePrefix + `"]`).Each(func(_ int, anchor *goquery.Selection) {
		title := cleanText(anchor.Text())
		target := strings.TrimSpace(anchor.AttrOr("href", ""))
		if title == "" || target == "" {
			return
		}

		// The anchor sits inside a table row whose second cell is the
		// location.
		var location string
		row := anchor.Closest("tr")
		if cells := row.Find("td"); cells.Length() >= 2 {
			location = cleanText(cells.Eq(1).Text())
		}

		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: teamEngineID(target),
			URL:      target,
			Location: location,
		})
	})
	return jobs
}

// teamEngineID returns the trailing path segment of an apply.teamengine.io
// link, the stable posting identifier.
func teamEngineID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
