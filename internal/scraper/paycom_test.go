package scraper

import "testing"

func TestParsePaycomLocLine(t *testing.T) {
	line := parsePaycomLocLine("Full-Time | Service - Amarillo, TX, 79101")
	if line.JobType != "Full-Time" {
		t.Fatalf("unexpected job type: %q", line.JobType)
	}
	if line.Dept != "Service" {
		t.Fatalf("unexpected department: %q", line.Dept)
	}
	if line.City != "Amarillo" || line.State != "TX" || line.Postal != "79101" {
		t.Fatalf("unexpected place: %+v", line)
	}
}

func TestParsePaycomLocLinePlaceOnly(t *testing.T) {
	line := parsePaycomLocLine("Dumas, TX")
	if line.JobType != "" || line.Dept != "" {
		t.Fatalf("expected bare place line, got %+v", line)
	}
	if line.City != "Dumas" || line.State != "TX" || line.Postal != "" {
		t.Fatalf("unexpected place: %+v", line)
	}
}

func TestPaycomJobID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.paycomonline.net/v4/ats/web.php/jobs/ViewJobDetails?clientkey=X&job=181177", "181177"},
		{"https://www.paycomonline.net/v4/ats/web.php/jobs/181177", "181177"},
		{"https://www.paycomonline.net/v4/ats/web.php/jobs?clientkey=X", ""},
	}
	for _, tc := range cases {
		if got := paycomJobID(tc.url); got != tc.want {
			t.Fatalf("paycomJobID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestPaycomJobIDsInHTML(t *testing.T) {
	raw := `
<a href="ViewJobDetails?clientkey=X&job=101">A</a>
<a href="ViewJobDetails?clientkey=X&job=102">B</a>
<a href="ViewJobDetails?clientkey=X&job=101">A again</a>`

	ids := paycomJobIDsInHTML(raw)
	if len(ids) != 2 {
		t.Fatalf("expected 2 unique ids, got %v", ids)
	}
	if ids[0] != "101" || ids[1] != "102" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestParsePaycomListing(t *testing.T) {
	html := `
<ul>
  <li class="jobInfo JobListing">
    <a class="JobListing__container" href="/v4/ats/web.php/jobs/ViewJobDetails?clientkey=X&job=181177">
      <span class="jobInfoLine jobTitle">Parts Counter Sales</span>
      <span class="jobInfoLine jobLocation">Full-Time | Parts - Amarillo, TX, 79101</span>
    </a>
  </li>
  <li class="jobInfo JobListing">
    <a class="JobListing__container" href="/v4/ats/web.php/jobs/ViewJobDetails?clientkey=X&job=181200">
      <span class="jobInfoLine jobTitle">Shop Technician</span>
      <span class="jobInfoLine jobLocation">Dalhart, TX, 79022</span>
    </a>
  </li>
</ul>`

	doc := mustDoc(t, html)
	jobs := parsePaycomListing(doc)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.Title != "Parts Counter Sales" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.NativeID != "181177" {
		t.Fatalf("unexpected native id: %q", first.NativeID)
	}
	if first.City != "Amarillo" || first.State != "TX" {
		t.Fatalf("unexpected place: %+v", first)
	}
	if first.JobType != "Full-Time" {
		t.Fatalf("unexpected job type: %q", first.JobType)
	}
	if first.URL != "https://www.paycomonline.net/v4/ats/web.php/jobs/ViewJobDetails?clientkey=X&job=181177" {
		t.Fatalf("unexpected url: %q", first.URL)
	}

	second := jobs[1]
	if second.JobType != "" || second.City != "Dalhart" {
		t.Fatalf("unexpected second job: %+v", second)
	}
}

func TestParsePaycomListingAnchorFallback(t *testing.T) {
	html := `<div><a href="/v4/ats/web.php/jobs/ViewJobDetails?clientkey=X&job=300">Welder</a></div>`
	doc := mustDoc(t, html)
	jobs := parsePaycomListing(doc)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job from anchor fallback, got %d", len(jobs))
	}
	if jobs[0].Title != "Welder" || jobs[0].NativeID != "300" {
		t.Fatalf("unexpected job: %+v", jobs[0])
	}
}
