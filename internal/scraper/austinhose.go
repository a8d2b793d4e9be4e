package scraper

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	austinHoseListURL = "https://recruiting.paylocity.com/recruiting/jobs/All/0a932b3f-65a0-4207-b5be-70d84a78ecaa/Austin-Hose"

	// Paylocity serves this page instead of the listing when it decides the
	// client cannot run JavaScript.
	paylocityJSWall = "In order to use this site, it is necessary to enable JavaScript."
)

var austinHoseDetailsRe = regexp.MustCompile(`/Details/(\d+)`)

// AustinHose scrapes the Austin Hose board hosted on Paylocity. The listing
// is server-rendered for browser-looking clients, but Paylocity sometimes
// answers with a JavaScript interstitial instead; when that happens the
// fetch is retried through headless Chrome.
type AustinHose struct {
	client   *network.Client
	renderer *browser.Renderer
}

func NewAustinHose(client *network.Client, renderer *browser.Renderer) *AustinHose {
	return &AustinHose{client: client, renderer: renderer}
}

func (a *AustinHose) Name() string {
	return SourceAustinHose
}

func (a *AustinHose) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceAustinHose,
		Company: "Austin Hose",
		BaseURL: austinHoseListURL,
	}
}

func (a *AustinHose) Fetch(ctx context.Context) ([]models.RawJob, error) {
	raw, err := fetchHTML(ctx, a.client, austinHoseListURL, map[string]string{
		"referer": austinHoseListURL,
	})
	if err != nil || strings.Contains(raw, paylocityJSWall) {
		raw, err = a.renderer.Render(ctx, austinHoseListURL, browser.RenderOptions{
			WaitVisible: "div.row.job-listing-job-item",
			Settle:      time.Second,
		})
		if err != nil {
			return nil, err
		}
	}

	doc, err := docFromHTML(raw)
	if err != nil {
		return nil, err
	}
	return parseAustinHose(doc), nil
}

func parseAustinHose(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	doc.Find("div.row.job-listing-job-item").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find(".job-title-column .job-item-title a").First()
		title := cleanText(anchor.Text())
		if title == "" {
			return
		}

		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		target := austinHoseListURL
		if href != "" {
			target = normalize.AbsoluteURL(austinHoseListURL, href)
		}

		var nativeID string
		if m := austinHoseDetailsRe.FindStringSubmatch(href); m != nil {
			nativeID = m[1]
		}

		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: nativeID,
			URL:      target,
			Location: cleanText(row.Find(".location-column span").First().Text()),
		})
	})
	return jobs
}
