package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/jimezsa/horizons/internal/models"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Senior   Shop\tWelder  ")
	want := "senior shop welder"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"Heavy Equipment Mechanic", "heavy-equipment-mechanic"},
		{"  --Teller (Part/Time)--  ", "teller-part-time"},
		{"Amarillo Branch", "amarillo-branch"},
	}
	for _, tc := range cases {
		if got := Slug(tc.value); got != tc.want {
			t.Fatalf("Slug(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestSlugBoundedLength(t *testing.T) {
	long := strings.Repeat("requisition ", 20)
	got := Slug(long)
	if len(got) > 90 {
		t.Fatalf("Slug() length = %d, want <= 90", len(got))
	}
	if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
		t.Fatalf("Slug() has dangling hyphen: %q", got)
	}
}

func TestResolveWithNativeID(t *testing.T) {
	raw := models.RawJob{Title: "Registered Nurse", NativeID: "R-104523"}
	got := Resolve("wtamu", "West Texas A&M University", raw, "Canyon, TX")
	want := "wtamu-r-104523-registered-nurse"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveContentHash(t *testing.T) {
	raw := models.RawJob{Title: "Welder"}
	got := Resolve("acme", "Acme", raw, "Amarillo, TX")

	sum := sha1.Sum([]byte("welder|acme|amarillo, tx"))
	want := hex.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	raw := models.RawJob{Title: "Welder"}
	first := Resolve("acme", "Acme", raw, "Amarillo, TX")
	second := Resolve("acme", "Acme", raw, "Amarillo, TX")
	if first != second {
		t.Fatalf("Resolve() not deterministic: %q vs %q", first, second)
	}
}

func TestResolveCosmeticDifferencesCollapse(t *testing.T) {
	a := ContentHash("Shop  Welder", "Acme", "Amarillo, TX")
	b := ContentHash(" shop welder ", "ACME", "amarillo, tx")
	if a != b {
		t.Fatalf("cosmetic variants fragmented identity: %q vs %q", a, b)
	}
}

func TestResolveDistinctInputsDiffer(t *testing.T) {
	base := ContentHash("Welder", "Acme", "Amarillo, TX")
	cases := []string{
		ContentHash("Senior Welder", "Acme", "Amarillo, TX"),
		ContentHash("Welder", "Beta", "Amarillo, TX"),
		ContentHash("Welder", "Acme", "Lubbock, TX"),
		ContentHash("Welder", "Acme", ""),
	}
	for i, other := range cases {
		if other == base {
			t.Fatalf("case %d: distinct tuple produced the same id", i)
		}
	}
}

func TestEmptyLocationIsOwnSegment(t *testing.T) {
	// A missing location must not collide with a shifted tuple.
	a := ContentHash("Welder Acme", "", "")
	b := ContentHash("Welder", "Acme", "")
	if a == b {
		t.Fatalf("empty segments collapsed across field boundaries")
	}
}
