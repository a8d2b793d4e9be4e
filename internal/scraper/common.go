package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/horizons/internal/network"
)

func fetchHTML(ctx context.Context, client *network.Client, target string, headers map[string]string) (string, error) {
	resp, err := client.Get(ctx, target, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, resp.Body); err != nil {
		return "", err
	}
	return b.String(), nil
}

func fetchDocument(ctx context.Context, client *network.Client, target string, headers map[string]string) (*goquery.Document, error) {
	resp, err := client.Get(ctx, target, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func docFromHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// cleanText collapses whitespace and replaces non-breaking spaces; HTML
// entities are already decoded by the parser.
func cleanText(value string) string {
	value = strings.ReplaceAll(value, " ", " ")
	return strings.Join(strings.Fields(value), " ")
}

// textAfterLabel finds a leaf element whose text is a field label ("Job
// Location", "Position Type") and returns the value that follows it, either
// inline after a colon or in the next sibling element.
func textAfterLabel(doc *goquery.Document, label string) string {
	label = strings.ToLower(label)
	value := ""
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := cleanText(s.Text())
		lower := strings.ToLower(text)
		if !strings.HasPrefix(lower, label) {
			return true
		}

		rest := strings.TrimSpace(strings.TrimPrefix(text[len(label):], ":"))
		if rest != "" {
			value = rest
			return false
		}
		if sibling := cleanText(s.Next().Text()); sibling != "" {
			value = sibling
			return false
		}
		return true
	})
	return value
}

// queryParam pulls one query parameter out of a raw URL, for boards whose
// native id is carried in the link (Paycom's ?job=, BrassRing's ?jobid=,
// Striven's ?LinkID=).
func queryParam(rawURL string, keys ...string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	values := parsed.Query()
	for _, key := range keys {
		for existing, vals := range values {
			if strings.EqualFold(existing, key) && len(vals) > 0 && vals[0] != "" {
				return vals[0]
			}
		}
	}
	return ""
}
