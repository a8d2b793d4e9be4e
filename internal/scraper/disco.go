package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const discoListURL = "https://www.disco-inc.com/careers"

var discoApplyPrefixRe = regexp.MustCompile(`(?i)^\s*Apply\s*-\s*`)

// Disco scrapes the careers page of DISCO Inc. The page only links out to
// Striven application forms, so each posting's title and location come from
// fetching its share.striven.com detail page.
type Disco struct {
	client *network.Client
}

func NewDisco(client *network.Client) *Disco {
	return &Disco{client: client}
}

func (d *Disco) Name() string {
	return SourceDisco
}

func (d *Disco) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceDisco,
		Company: "DISCO Inc.",
		BaseURL: discoListURL,
	}
}

func (d *Disco) Fetch(ctx context.Context) ([]models.RawJob, error) {
	doc, err := fetchDocument(ctx, d.client, discoListURL, map[string]string{
		"referer": discoListURL,
	})
	if err != nil {
		return nil, err
	}

	var jobs []models.RawJob
	seen := make(map[string]bool)
	for _, target := range discoStrivenLinks(doc) {
		linkID := queryParam(target, "LinkID", "linkid")
		if linkID != "" {
			if seen[linkID] {
				continue
			}
			seen[linkID] = true
		}

		detail, err := fetchDocument(ctx, d.client, target, nil)
		if err != nil {
			if ctx.Err() != nil {
				return jobs, ctx.Err()
			}
			continue
		}
		title, location := parseStrivenDetail(detail)
		if title == "" {
			continue
		}

		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: linkID,
			URL:      target,
			Location: location,
		})
	}
	return jobs, nil
}

func discoStrivenLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find(`a[href*="share.striven.com/Job"]`).Each(func(_ int, anchor *goquery.Selection) {
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		if href == "" {
			return
		}
		links = append(links, normalize.AbsoluteURL(discoListURL, href))
	})
	return links
}

// parseStrivenDetail extracts (title, location) from a Striven job page.
// The "Job Title:" field wins when present; otherwise the page heading is
// used with its "Apply - " prefix stripped. Postings without a "Location:"
// field (e.g. a general opening) yield an empty location.
func parseStrivenDetail(doc *goquery.Document) (title, location string) {
	title = textAfterLabel(doc, "Job Title")
	if title == "" {
		heading := cleanText(doc.Find("h1").First().Text())
		if heading == "" {
			heading = cleanText(doc.Find("h2").First().Text())
		}
		title = strings.TrimSpace(discoApplyPrefixRe.ReplaceAllString(heading, ""))
		if title == "" {
			title = heading
		}
	}
	location = textAfterLabel(doc, "Location")
	return title, location
}
