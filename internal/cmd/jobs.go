package cmd

import (
	"os"
	"strings"

	"github.com/jimezsa/horizons/internal/export"
	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/snapshot"
)

type JobsCmd struct {
	List JobsListCmd `cmd:"" default:"withargs" help:"List jobs from the snapshot."`
}

type JobsListCmd struct {
	Snapshot string `help:"Snapshot JSON path (default: jobs.json in the config dir)."`
	Source   string `help:"Only jobs from this source."`
	Company  string `help:"Only jobs from this company (exact match)."`
	Location string `help:"Location substring filter (case-insensitive)."`
	Keyword  string `short:"q" help:"Title substring filter (case-insensitive)."`
	Limit    int    `help:"Maximum rows."`
	Format   string `help:"Output format: csv, json, md." enum:",csv,json,md" default:""`
	Links    string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output   string `name:"output" short:"o" help:"Write output to a file."`
}

func (c *JobsListCmd) Run(ctx *Context) error {
	path := c.Snapshot
	if strings.TrimSpace(path) == "" {
		var err error
		path, err = ctx.Config.ResolveSnapshotPath()
		if err != nil {
			return err
		}
	}

	jobs, err := snapshot.Load(path)
	if err != nil {
		ctx.UI.Warnf("Snapshot unreadable, treating as empty: %v", err)
	}

	jobs = filterJobs(jobs, c.Source, c.Company, c.Location, c.Keyword)
	if c.Limit > 0 && len(jobs) > c.Limit {
		jobs = jobs[:c.Limit]
	}

	format := resolveFormat(ctx, c.Format)
	opts := export.WriteOptions{
		ColorEnabled: ctx.UI.ColorEnabled && c.Output == "",
		Hyperlinks:   ctx.UI.ColorEnabled && c.Output == "" && format == export.FormatTable,
		LinkStyle:    export.LinkStyle(c.Links),
	}

	if c.Output != "" {
		file, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		opts.ColorEnabled = false
		opts.Hyperlinks = false
		return export.WriteJobs(file, jobs, format, opts)
	}

	if format == export.FormatTable && len(jobs) == 0 {
		ctx.UI.Infof("No jobs in snapshot %s", path)
		return nil
	}
	return export.WriteJobs(ctx.Out, jobs, format, opts)
}

func filterJobs(jobs []models.Job, source, company, location, keyword string) []models.Job {
	source = strings.ToLower(strings.TrimSpace(source))
	location = strings.ToLower(strings.TrimSpace(location))
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	company = strings.TrimSpace(company)

	var out []models.Job
	for _, job := range jobs {
		if source != "" && strings.ToLower(job.Source) != source {
			continue
		}
		if company != "" && job.Company != company {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.LocationString()), location) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(job.Title), keyword) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func resolveFormat(ctx *Context, flagValue string) export.Format {
	switch {
	case flagValue != "":
		return export.Format(flagValue)
	case ctx.JSONOutput:
		return export.FormatJSON
	case ctx.PlainText:
		return export.FormatTSV
	default:
		return export.FormatTable
	}
}
