package scraper

import (
	"context"
	"fmt"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/normalize"
)

const (
	fmcClientKey  = "51CCB437D1A5BB8EA54B11A3C07895CA"
	fmcMaxPages   = 10
	fmcDetailPath = "/v4/ats/web.php/jobs/ViewJobDetails"
)

var fmcListURL = fmt.Sprintf("%s/v4/ats/web.php/jobs?clientkey=%s", paycomBase, fmcClientKey)

// FMC scrapes the FMC board on Paycom. The list usually server-renders;
// when it does not, job ids are harvested from the raw markup and each
// detail page is fetched for the minimum fields.
type FMC struct {
	client *network.Client
}

func NewFMC(client *network.Client) *FMC {
	return &FMC{client: client}
}

func (f *FMC) Name() string {
	return SourceFMC
}

func (f *FMC) Options() normalize.Options {
	return normalize.Options{
		Source:  SourceFMC,
		Company: "FMC",
		BaseURL: paycomBase,
	}
}

func (f *FMC) Fetch(ctx context.Context) ([]models.RawJob, error) {
	headers := map[string]string{"referer": fmcListURL}

	var jobs []models.RawJob
	for page := 1; page <= fmcMaxPages; page++ {
		target := fmcListURL
		if page > 1 {
			target = fmt.Sprintf("%s&page=%d", fmcListURL, page)
		}

		raw, err := fetchHTML(ctx, f.client, target, headers)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		doc, err := docFromHTML(raw)
		if err != nil {
			return nil, err
		}

		pageJobs := parsePaycomListing(doc)
		if len(pageJobs) == 0 {
			if page == 1 {
				return f.fetchFromDetails(ctx, paycomJobIDsInHTML(raw))
			}
			break
		}
		jobs = append(jobs, pageJobs...)
	}
	return jobs, nil
}

func (f *FMC) fetchFromDetails(ctx context.Context, ids []string) ([]models.RawJob, error) {
	var jobs []models.RawJob
	for _, id := range ids {
		target := fmt.Sprintf("%s%s?clientkey=%s&job=%s", paycomBase, fmcDetailPath, fmcClientKey, id)
		doc, err := fetchDocument(ctx, f.client, target, map[string]string{"referer": fmcListURL})
		if err != nil {
			if ctx.Err() != nil {
				return jobs, ctx.Err()
			}
			continue
		}

		title := cleanText(doc.Find("h1, h2, #content h1").First().Text())
		if title == "" {
			continue
		}

		line := parsePaycomLocLine(textAfterLabel(doc, "Job Location"))
		jobs = append(jobs, models.RawJob{
			Title:    title,
			NativeID: id,
			URL:      target,
			Location: line.Raw,
			City:     line.City,
			State:    line.State,
			Postal:   line.Postal,
			JobType:  cleanText(textAfterLabel(doc, "Position Type")),
		})
	}
	return jobs, nil
}
