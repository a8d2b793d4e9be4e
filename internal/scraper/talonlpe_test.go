package scraper

import "testing"

func TestParseTalonLPE(t *testing.T) {
	html := `
<table>
  <tr>
    <td><a href="https://apply.teamengine.io/apply/3fb9c2">Environmental Driller</a></td>
    <td>Amarillo, TX</td>
  </tr>
  <tr>
    <td><a href="https://apply.teamengine.io/apply/9ac1d4">Staff Geologist</a></td>
    <td>Midland, TX</td>
  </tr>
  <tr>
    <td><a href="https://www.talonlpe.com/about">Not a job</a></td>
    <td>Nowhere</td>
  </tr>
</table>`

	doc := mustDoc(t, html)
	jobs := parseTalonLPE(doc)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.Title != "Environmental Driller" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.NativeID != "3fb9c2" {
		t.Fatalf("unexpected native id: %q", first.NativeID)
	}
	if first.Location != "Amarillo, TX" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
}

func TestParseTalonLPEOutsideTable(t *testing.T) {
	html := `<div><a href="https://apply.teamengine.io/apply/77aa00">Field Technician</a></div>`
	doc := mustDoc(t, html)
	jobs := parseTalonLPE(doc)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Location != "" {
		t.Fatalf("expected empty location, got %q", jobs[0].Location)
	}
}

func TestTeamEngineID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://apply.teamengine.io/apply/8bafbe1e-45b9-48b2-8dd0-61701f4c077d", "8bafbe1e-45b9-48b2-8dd0-61701f4c077d"},
		{"https://apply.teamengine.io/apply/abc/", "abc"},
		{"https://apply.teamengine.io/", ""},
	}
	for _, tc := range cases {
		if got := teamEngineID(tc.url); got != tc.want {
			t.Fatalf("teamEngineID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
