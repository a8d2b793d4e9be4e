package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/normalize"
)

// Helpers shared by the Paycom-hosted boards (FMC, Western Equipment).
// Paycom list pages carry one location line per card shaped like
// "Full-Time | Service - Amarillo, TX, 79101"; the pieces before the city
// are optional.

const paycomBase = "https://www.paycomonline.net"

var (
	paycomCityStateRe = regexp.MustCompile(`([^,]+),\s*([A-Z]{2})(?:,\s*(\d{5}))?$`)
	paycomJobPathRe   = regexp.MustCompile(`/jobs/(\d+)`)
	paycomJobIDRe     = regexp.MustCompile(`ViewJobDetails[^"'>]+?job=(\d+)`)
)

type paycomLocLine struct {
	JobType string
	Dept    string
	City    string
	State   string
	Postal  string
	Raw     string
}

func parsePaycomLocLine(text string) paycomLocLine {
	s := strings.TrimSpace(text)
	line := paycomLocLine{Raw: s}

	right := s
	if idx := strings.Index(right, "|"); idx >= 0 {
		line.JobType = strings.TrimSpace(right[:idx])
		right = strings.TrimSpace(right[idx+1:])
	}
	place := right
	if idx := strings.Index(right, " - "); idx >= 0 {
		line.Dept = strings.TrimSpace(right[:idx])
		place = strings.TrimSpace(right[idx+3:])
	}
	line.Raw = place

	if m := paycomCityStateRe.FindStringSubmatch(place); m != nil {
		line.City = strings.TrimSpace(m[1])
		line.State = m[2]
		line.Postal = m[3]
	}
	return line
}

// paycomJobID pulls the numeric job id from either URL shape the platform
// emits: ...ViewJobDetails?...&job=181177 or .../jobs/181177.
func paycomJobID(rawURL string) string {
	if id := queryParam(rawURL, "job"); id != "" {
		return id
	}
	if m := paycomJobPathRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// paycomJobIDsInHTML harvests ids from raw markup, the fallback when the
// list renders client-side and the cards are absent.
func paycomJobIDsInHTML(html string) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, m := range paycomJobIDRe.FindAllStringSubmatch(html, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}

func paycomSelectCards(doc *goquery.Document) *goquery.Selection {
	if cards := doc.Find("li.jobInfo.JobListing"); cards.Length() > 0 {
		return cards
	}
	if cards := doc.Find("li.JobListing, li.jobListing, li[class*='JobListing']"); cards.Length() > 0 {
		return cards
	}
	return doc.Find("a.JobListing__container[href*='ViewJobDetails'], a[href*='ViewJobDetails?']")
}

func parsePaycomCard(card *goquery.Selection) (models.RawJob, bool) {
	anchor := card
	if !card.Is("a") {
		anchor = card.Find("a.JobListing__container[href], a[href*='ViewJobDetails']").First()
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return models.RawJob{}, false
	}
	abs := normalize.AbsoluteURL(paycomBase, strings.TrimSpace(href))

	title := cleanText(card.Find("span.jobInfoLine.jobTitle").First().Text())
	if title == "" {
		title = cleanText(anchor.Text())
	}
	if title == "" {
		return models.RawJob{}, false
	}

	line := parsePaycomLocLine(card.Find("span.jobInfoLine.jobLocation").First().Text())

	return models.RawJob{
		Title:    title,
		NativeID: paycomJobID(abs),
		URL:      abs,
		Location: line.Raw,
		City:     line.City,
		State:    line.State,
		Postal:   line.Postal,
		JobType:  line.JobType,
	}, true
}

func parsePaycomListing(doc *goquery.Document) []models.RawJob {
	var jobs []models.RawJob
	paycomSelectCards(doc).Each(func(_ int, card *goquery.Selection) {
		if job, ok := parsePaycomCard(card); ok {
			jobs = append(jobs, job)
		}
	})
	return jobs
}
