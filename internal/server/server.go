// Package server exposes the snapshot as a small dashboard: one HTML page
// with keyword, company and location filters, plus a JSON endpoint.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jimezsa/horizons/internal/models"
)

type Server struct {
	Provider Provider
	Logger   zerolog.Logger
	tmpl     *template.Template
}

func New(provider Provider, logger zerolog.Logger) *Server {
	return &Server{
		Provider: provider,
		Logger:   logger,
		tmpl:     template.Must(template.New("index").Parse(indexTemplate)),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/jobs", s.handleAPI)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	})
}

// Filters are the dashboard's three knobs, combined with AND: keyword is a
// case-insensitive title substring, company an exact match against the
// values present in the data, location a case-insensitive substring.
type Filters struct {
	Keyword  string
	Company  string
	Location string
}

func filtersFromQuery(r *http.Request) Filters {
	q := r.URL.Query()
	return Filters{
		Keyword:  strings.TrimSpace(q.Get("q")),
		Company:  strings.TrimSpace(q.Get("company")),
		Location: strings.TrimSpace(q.Get("location")),
	}
}

func applyFilters(jobs []models.Job, f Filters) []models.Job {
	keyword := strings.ToLower(f.Keyword)
	location := strings.ToLower(f.Location)

	var out []models.Job
	for _, job := range jobs {
		if keyword != "" && !strings.Contains(strings.ToLower(job.Title), keyword) {
			continue
		}
		if f.Company != "" && job.Company != f.Company {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.LocationString()), location) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// companyOptions lists the distinct companies in the data, sorted
// case-insensitively, for the dropdown.
func companyOptions(jobs []models.Job) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, job := range jobs {
		if job.Company == "" {
			continue
		}
		if _, ok := seen[job.Company]; ok {
			continue
		}
		seen[job.Company] = struct{}{}
		out = append(out, job.Company)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

type indexData struct {
	Total     int
	Jobs      []models.Job
	Companies []string
	Filters   Filters
	NoData    bool
	NoResults bool
	LoadError string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	data := indexData{Filters: filtersFromQuery(r)}
	jobs, err := s.Provider.Jobs(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("failed to load jobs")
		data.LoadError = err.Error()
	}

	data.Total = len(jobs)
	data.Companies = companyOptions(jobs)
	data.Jobs = applyFilters(jobs, data.Filters)
	data.NoData = err == nil && len(jobs) == 0
	data.NoResults = len(jobs) > 0 && len(data.Jobs) == 0

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.Logger.Error().Err(err).Msg("template render failed")
	}
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	jobs, err := s.Provider.Jobs(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := applyFilters(jobs, filtersFromQuery(r))
	if filtered == nil {
		filtered = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(filtered); err != nil {
		s.Logger.Error().Err(err).Msg("json encode failed")
	}
}

const indexTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Horizons Job Aggregator</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 72rem; padding: 0 1rem; color: #1c1e21; }
h1 { margin-bottom: .25rem; }
.meta { color: #666; margin-bottom: 1.5rem; }
form { display: flex; gap: .75rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
input, select { padding: .45rem .6rem; border: 1px solid #ccc; border-radius: 4px; font-size: .95rem; }
button { padding: .45rem 1rem; border: none; border-radius: 4px; background: #2563eb; color: #fff; cursor: pointer; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .5rem .6rem; border-bottom: 1px solid #e5e5e5; font-size: .92rem; }
th { background: #f7f7f8; }
.notice { padding: 1rem; border-radius: 6px; background: #fef9c3; }
.empty { padding: 1rem; border-radius: 6px; background: #e0f2fe; }
.error { padding: 1rem; border-radius: 6px; background: #fee2e2; }
</style>
</head>
<body>
<h1>Horizons Job Aggregator</h1>
<p class="meta">{{.Total}} jobs loaded</p>

<form method="get" action="/">
  <input type="text" name="q" placeholder="Keyword" value="{{.Filters.Keyword}}">
  <select name="company">
    <option value="">All companies</option>
    {{- range .Companies}}
    <option value="{{.}}"{{if eq . $.Filters.Company}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
  <input type="text" name="location" placeholder="City / State" value="{{.Filters.Location}}">
  <button type="submit">Filter</button>
</form>

{{if .LoadError}}
<div class="error">Failed to load jobs: {{.LoadError}}</div>
{{else if .NoData}}
<div class="empty">No jobs available yet. Come back after the next run.</div>
{{else if .NoResults}}
<div class="notice">No results match your filters.</div>
{{else}}
<table>
  <thead>
    <tr><th>Job Title</th><th>Company</th><th>Salary</th><th>Location</th><th>Link</th></tr>
  </thead>
  <tbody>
    {{- range .Jobs}}
    <tr>
      <td>{{.Title}}</td>
      <td>{{.Company}}</td>
      <td>{{.SalaryString}}</td>
      <td>{{.LocationString}}</td>
      <td><a href="{{.URL}}" target="_blank" rel="noopener">Open</a></td>
    </tr>
    {{- end}}
  </tbody>
</table>
{{end}}
</body>
</html>
`
