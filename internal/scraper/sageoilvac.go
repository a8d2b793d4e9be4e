package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	sageOilVacBase    = "https://sageoilvac.isolvedhire.com"
	sageOilVacListURL = sageOilVacBase + "/jobs/"
)

// SageOilVac scrapes the Sage Oil Vac board on isolved. The listing is a
// Next.js app, so positions are read from the embedded __NEXT_DATA__ JSON
// rather than the rendered markup. Cloudflare occasionally withholds the
// payload from plain clients; headless Chrome covers that case.
type SageOilVac struct {
	client   *network.Client
	renderer *browser.Renderer
}

func NewSageOilVac(client *network.Client, renderer *browser.Renderer) *SageOilVac {
	return &SageOilVac{client: client, renderer: renderer}
}

func (s *SageOilVac) Name() string {
	return SourceSageOilVac
}

func (s *SageOilVac) Options() normalize.Options {
	return normalize.Options{
		Source:        SourceSageOilVac,
		Company:       "Sage Oil Vac",
		BaseURL:       sageOilVacBase,
		StripSuffixes: []string{", USA"},
	}
}

func (s *SageOilVac) Fetch(ctx context.Context) ([]models.RawJob, error) {
	if raw, err := fetchHTML(ctx, s.client, sageOilVacListURL, nil); err == nil {
		if jobs := parseSageOilVac(raw); len(jobs) > 0 {
			return jobs, nil
		}
	}

	raw, err := s.renderer.Render(ctx, sageOilVacListURL, browser.RenderOptions{
		WaitVisible: "script#__NEXT_DATA__",
		Settle:      time.Second,
	})
	if err != nil {
		return nil, err
	}
	return parseSageOilVac(raw), nil
}

func parseSageOilVac(raw string) []models.RawJob {
	doc, err := docFromHTML(raw)
	if err != nil {
		return nil
	}
	payload := doc.Find("script#__NEXT_DATA__").First().Text()
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	var data any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil
	}

	var jobs []models.RawJob
	for _, row := range nextDataPositions(data) {
		title := stringField(row, "title", "name")
		target := stringField(row, "url", "applyUrl")
		id := stringField(row, "id")
		if id == "" && target != "" {
			parts := strings.Split(strings.TrimRight(target, "/"), "/")
			id = parts[len(parts)-1]
		}
		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: id,
			URL:      target,
			Location: stringField(row, "location"),
			Salary:   stringField(row, "pay", "compensation"),
			Posted:   stringField(row, "posted", "postDate"),
			JobType:  stringField(row, "employment_type"),
		})
	}
	return jobs
}

// nextDataPositions pulls the job rows out of a Next.js __NEXT_DATA__
// payload. It tries props.pageProps.positions (and .data.positions) first,
// then falls back to a depth-first search for a list of objects that carry
// a "title" key.
func nextDataPositions(data any) []map[string]any {
	if props, ok := data.(map[string]any); ok {
		if page, ok := props["props"].(map[string]any); ok {
			if pageProps, ok := page["pageProps"].(map[string]any); ok {
				if rows := positionRows(pageProps["positions"]); rows != nil {
					return rows
				}
				if inner, ok := pageProps["data"].(map[string]any); ok {
					if rows := positionRows(inner["positions"]); rows != nil {
						return rows
					}
				}
			}
		}
	}
	return findPositionList(data)
}

func positionRows(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if row, ok := item.(map[string]any); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}

func findPositionList(obj any) []map[string]any {
	switch v := obj.(type) {
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if _, has := first["title"]; has {
					return positionRows(v)
				}
			}
		}
		for _, item := range v {
			if hit := findPositionList(item); hit != nil {
				return hit
			}
		}
	case map[string]any:
		for _, item := range v {
			if hit := findPositionList(item); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// stringField returns the first non-empty value among keys, rendering
// JSON numbers without an exponent.
func stringField(row map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := row[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
