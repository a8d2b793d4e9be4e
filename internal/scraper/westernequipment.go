package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const westernEquipmentClientKey = "BEC705AAE8346DB92E3A5C60250EE84C"

var westernEquipmentListURL = fmt.Sprintf("%s/v4/ats/web.php/jobs?clientkey=%s", paycomBase, westernEquipmentClientKey)

// WesternEquipment scrapes the Western Equipment board on Paycom. This
// tenant consistently renders client-side, so a plain fetch is tried first
// and headless Chrome picks up the rest.
type WesternEquipment struct {
	client   *network.Client
	renderer *browser.Renderer
}

func NewWesternEquipment(client *network.Client, renderer *browser.Renderer) *WesternEquipment {
	return &WesternEquipment{client: client, renderer: renderer}
}

func (w *WesternEquipment) Name() string {
	return SourceWesternEquipment
}

func (w *WesternEquipment) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceWesternEquipment,
		Company: "Western Equipment",
		BaseURL: paycomBase,
	}
}

func (w *WesternEquipment) Fetch(ctx context.Context) ([]models.RawJob, error) {
	if raw, err := fetchHTML(ctx, w.client, westernEquipmentListURL, nil); err == nil {
		if doc, docErr := docFromHTML(raw); docErr == nil {
			if jobs := parsePaycomListing(doc); len(jobs) > 0 {
				return jobs, nil
			}
		}
	}

	raw, err := w.renderer.Render(ctx, westernEquipmentListURL, browser.RenderOptions{
		WaitVisible: "li.jobInfo.JobListing, a[href*='ViewJobDetails']",
		Settle:      2 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	doc, err := docFromHTML(raw)
	if err != nil {
		return nil, err
	}
	return parsePaycomListing(doc), nil
}
