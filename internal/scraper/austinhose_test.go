package scraper

import "testing"

func TestParseAustinHose(t *testing.T) {
	html := `
<div class="row job-listing-job-item">
  <div class="job-title-column">
    <div class="job-item-title"><a href="/Recruiting/Jobs/Details/2990001">Delivery Driver</a></div>
  </div>
  <div class="location-column"><span>Amarillo, TX</span></div>
</div>
<div class="row job-listing-job-item">
  <div class="job-title-column">
    <div class="job-item-title"><a href="/Recruiting/Jobs/Details/2990002">Warehouse Associate</a></div>
  </div>
  <div class="location-column"><span></span></div>
</div>
<div class="row job-listing-job-item">
  <div class="job-title-column"><div class="job-item-title"><a href="/x"></a></div></div>
</div>`

	doc := mustDoc(t, html)
	jobs := parseAustinHose(doc)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.Title != "Delivery Driver" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.NativeID != "2990001" {
		t.Fatalf("unexpected native id: %q", first.NativeID)
	}
	if first.URL != "https://recruiting.paylocity.com/Recruiting/Jobs/Details/2990001" {
		t.Fatalf("unexpected url: %q", first.URL)
	}
	if first.Location != "Amarillo, TX" {
		t.Fatalf("unexpected location: %q", first.Location)
	}

	if jobs[1].Location != "" {
		t.Fatalf("expected empty location, got %q", jobs[1].Location)
	}
}
