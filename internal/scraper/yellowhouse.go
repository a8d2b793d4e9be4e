package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const yellowhouseBaseURL = "https://careers.yhmc.com/"

// Yellowhouse scrapes the Yellowhouse Machinery careers page, a plain
// server-rendered listing.
type Yellowhouse struct {
	client *network.Client
}

func NewYellowhouse(client *network.Client) *Yellowhouse {
	return &Yellowhouse{client: client}
}

func (y *Yellowhouse) Name() string {
	return SourceYellowhouse
}

func (y *Yellowhouse) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceYellowhouse,
		Company: "Yellowhouse Machinery",
		BaseURL: yellowhouseBaseURL,
	}
}

func (y *Yellowhouse) Fetch(ctx context.Context) ([]models.RawJob, error) {
	doc, err := fetchDocument(ctx, y.client, yellowhouseBaseURL, nil)
	if err != nil {
		return nil, err
	}
	return parseYellowhouseListings(doc), nil
}

func parseYellowhouseListings(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	doc.Find("div.listing").Each(func(_ int, card *goquery.Selection) {
		title := cleanText(card.Find("h3.listing-title").First().Text())
		if title == "" {
			return
		}

		location := cleanText(card.Find("li.udf-1960635 span.value").First().Text())
		salary := cleanText(card.Find("li.udf-salary span.value").First().Text())

		href, _ := card.Find("a[href]").First().Attr("href")
		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: yellowhouseSlugFromHref(href),
			URL:      href,
			Location: location,
			Salary:   salary,
		})
	})
	return jobs
}

// yellowhouseSlugFromHref uses the link path (minus any query) as the
// board's stable identifier.
func yellowhouseSlugFromHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if idx := strings.IndexByte(href, '?'); idx >= 0 {
		href = href[:idx]
	}
	return strings.Trim(href, "/")
}
