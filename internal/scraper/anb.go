package scraper

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const anbListURL = "https://www.anb.com/about-anb/careers.html"

// The ANB careers page is a CMS export: job titles sit inside
// {beginAccordion}/{endAccordion} token blocks grouped under region
// headings, with no per-job links or ids. The region heading doubles as
// the location hint, with the bank's operating state assumed.
var (
	anbBeginRe = regexp.MustCompile(`(?i)\{beginAccordion[^}]*\}`)
	anbEndRe   = regexp.MustCompile(`(?i)\{endAccordion\}`)

	anbAttrTitleRe = regexp.MustCompile(`(?i)(?:title|heading|label)\s*[:=]\s*(['"])(.*?)['"]`)

	anbRegionH2Re = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`)
	anbRegionMDRe = regexp.MustCompile(`(?m)^##\s*([^\n<]+?)\s*$`)

	anbButtonTitleRe = regexp.MustCompile(`(?is)<button[^>]*class="[^"]*accordion-button[^"]*"[^>]*>(.*?)</button>`)
	anbH3TitleRe     = regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`)
	anbMDTitleRe     = regexp.MustCompile(`(?m)^###\s*([^\n<]+?)\s*$`)

	anbTagRe = regexp.MustCompile(`(?s)<[^>]+>`)
)

type ANB struct {
	client *network.Client
}

func NewANB(client *network.Client) *ANB {
	return &ANB{client: client}
}

func (a *ANB) Name() string {
	return SourceANB
}

func (a *ANB) Options() normalize.Options {
	return normalize.Options{
		Source:      SourceANB,
		Company:     "Amarillo National Bank",
		BaseURL:     anbListURL,
		AssumeState: "TX",
	}
}

func (a *ANB) Fetch(ctx context.Context) ([]models.RawJob, error) {
	raw, err := fetchHTML(ctx, a.client, anbListURL, map[string]string{"referer": anbListURL})
	if err != nil {
		return nil, err
	}
	return parseANBPage(raw), nil
}

func parseANBPage(raw string) []models.RawJob {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = html.UnescapeString(raw)
	raw = strings.ReplaceAll(raw, " ", " ")

	var jobs []models.RawJob
	pos := 0
	for {
		begin := anbBeginRe.FindStringIndex(raw[pos:])
		if begin == nil {
			break
		}
		blockStart := pos + begin[1]
		end := anbEndRe.FindStringIndex(raw[blockStart:])
		if end == nil {
			break
		}
		block := raw[blockStart : blockStart+end[0]]

		token := raw[pos+begin[0] : pos+begin[1]]
		region := ""
		if m := anbAttrTitleRe.FindStringSubmatch(token); m != nil {
			region = cleanText(m[2])
		}
		if region == "" {
			region = anbNearestRegion(raw[:pos+begin[0]])
		}

		for _, title := range anbTitlesFromBlock(block) {
			jobs = append(jobs, models.RawJob{
				Title:    title,
				NativeID: anbNativeID(region),
				URL:      anbListURL,
				Location: region,
			})
		}

		pos = blockStart + end[1]
	}
	return jobs
}

// anbNearestRegion finds the heading closest above an accordion block:
// the last <h2> before it, else the last markdown "## " line.
func anbNearestRegion(before string) string {
	if matches := anbRegionH2Re.FindAllStringSubmatch(before, -1); len(matches) > 0 {
		return cleanText(anbStripTags(matches[len(matches)-1][1]))
	}
	if matches := anbRegionMDRe.FindAllStringSubmatch(before, -1); len(matches) > 0 {
		return cleanText(matches[len(matches)-1][1])
	}
	return ""
}

func anbTitlesFromBlock(block string) []string {
	var titles []string
	for _, re := range []*regexp.Regexp{anbButtonTitleRe, anbH3TitleRe, anbMDTitleRe} {
		for _, m := range re.FindAllStringSubmatch(block, -1) {
			if t := cleanText(anbStripTags(m[1])); t != "" {
				titles = append(titles, t)
			}
		}
	}

	seen := map[string]struct{}{}
	uniq := titles[:0]
	for _, t := range titles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	return uniq
}

func anbStripTags(fragment string) string {
	return anbTagRe.ReplaceAllString(fragment, " ")
}

// anbNativeID stands in for a job id the board does not have: the region
// scopes the title-based slug so identical titles in different markets stay
// distinct.
func anbNativeID(region string) string {
	if region == "" {
		return "hq"
	}
	return region
}
