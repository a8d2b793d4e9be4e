package scraper

import "testing"

func TestParseANBPageHeadings(t *testing.T) {
	page := `
<h2>Amarillo</h2>
{beginAccordion}
<button class="accordion-button">Teller I</button>
<button class="accordion-button">Personal Banker</button>
{endAccordion}
<h2>Lubbock</h2>
{beginAccordion}
<h3>Teller I</h3>
{endAccordion}`

	jobs := parseANBPage(page)
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Teller I" || jobs[0].Location != "Amarillo" {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
	if jobs[2].Location != "Lubbock" {
		t.Fatalf("unexpected region for third job: %+v", jobs[2])
	}
	if jobs[0].NativeID == jobs[2].NativeID {
		t.Fatalf("same title in different regions should get distinct ids")
	}
}

func TestParseANBPageTitleAttr(t *testing.T) {
	page := `
{beginAccordion title="Borger"}
### Loan Officer
{endAccordion}`

	jobs := parseANBPage(page)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Location != "Borger" {
		t.Fatalf("unexpected region: %q", jobs[0].Location)
	}
	if jobs[0].Title != "Loan Officer" {
		t.Fatalf("unexpected title: %q", jobs[0].Title)
	}
}

func TestParseANBPageDedupesTitlesWithinBlock(t *testing.T) {
	page := `
<h2>Amarillo</h2>
{beginAccordion}
<button class="accordion-button">Teller I</button>
<h3>Teller I</h3>
{endAccordion}`

	jobs := parseANBPage(page)
	if len(jobs) != 1 {
		t.Fatalf("expected duplicate titles collapsed, got %d jobs", len(jobs))
	}
}

func TestANBNativeIDFallback(t *testing.T) {
	if got := anbNativeID(""); got != "hq" {
		t.Fatalf("expected hq fallback, got %q", got)
	}
}
