package scraper

import "testing"

func TestParseWTAMU(t *testing.T) {
	html := `
<ul>
  <li>
    <a data-automation-id="jobTitle" href="/en-US/WTAMU_External/job/Canyon-TX/Registered-Nurse_R-104523?source=listing">Registered Nurse</a>
    <div data-automation-id="locations">Locations Canyon, TX</div>
    <ul data-automation-id="subtitle"><li>R-104523</li></ul>
  </li>
  <li>
    <a data-automation-id="jobTitle" href="job/Canyon-TX/Custodian_R-104600-1">Custodian</a>
    <div data-automation-id="locations">Canyon, TX</div>
    <ul data-automation-id="subtitle"><li>R-104600-1</li></ul>
  </li>
</ul>`

	doc := mustDoc(t, html)
	jobs := parseWTAMU(doc)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.Title != "Registered Nurse" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.NativeID != "R-104523" {
		t.Fatalf("unexpected native id: %q", first.NativeID)
	}
	if first.Location != "Canyon, TX" {
		t.Fatalf("location label should be stripped, got %q", first.Location)
	}
	if first.URL != "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/Canyon-TX/Registered-Nurse_R-104523" {
		t.Fatalf("unexpected url: %q", first.URL)
	}

	if jobs[1].NativeID != "R-104600-1" {
		t.Fatalf("unexpected native id: %q", jobs[1].NativeID)
	}
}

func TestWTAMUJobURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1?state=open", "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1"},
		{"//tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1", "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1"},
		{"/en-US/WTAMU_External/job/X_R-1#apply", "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1"},
		{"./job/X_R-1", "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External/job/X_R-1"},
		{"", "https://tamus.wd1.myworkdayjobs.com/en-US/WTAMU_External"},
	}
	for _, tc := range cases {
		if got := wtamuJobURL(tc.href); got != tc.want {
			t.Fatalf("wtamuJobURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestWTAMUReqID(t *testing.T) {
	if got := wtamuReqID("Time Type: Full time | R-104523-2 | Posted Today"); got != "R-104523-2" {
		t.Fatalf("unexpected req id: %q", got)
	}
	if got := wtamuReqID("no id here"); got != "" {
		t.Fatalf("expected empty req id, got %q", got)
	}
}

func TestDedupeWTAMU(t *testing.T) {
	jobs := parseWTAMU(mustDoc(t, `
<li><a data-automation-id="jobTitle" href="job/X_R-1">Advisor</a></li>
<li><a data-automation-id="jobTitle" href="job/X_R-1">Advisor</a></li>`))
	if got := len(dedupeWTAMU(jobs)); got != 1 {
		t.Fatalf("expected 1 job after dedupe, got %d", got)
	}
}
