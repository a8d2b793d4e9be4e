// Package identity computes stable job ids used for deduplication across
// runs. Ids are pure functions of the record: no randomness, no clock.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/jimezsa/horizons/internal/models"
)

const (
	keySeparator = "|"
	maxSlugLen   = 90
)

// Normalize folds cosmetic differences out of an id segment: trim, collapse
// internal whitespace, lowercase. "Senior  Welder " and "senior welder"
// resolve to the same identity.
func Normalize(value string) string {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(value, " ", " ")))
	return strings.Join(fields, " ")
}

// Slug lowercases value, collapses non-alphanumeric runs to single hyphens
// and strips leading/trailing hyphens.
func Slug(value string) string {
	value = strings.ToLower(strings.ReplaceAll(value, " ", " "))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range value {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// Resolve assigns a stable id to a raw record. When the board supplies a
// native identifier (platform job id, requisition number, GUID) the id is a
// bounded slug of source, native id and title; otherwise it is the sha1 hex
// digest of the normalized (title, company, location) tuple.
//
// The caller must discard records with an empty title before resolving;
// missing optional fields participate as empty segments.
func Resolve(source string, company string, raw models.RawJob, location string) string {
	if strings.TrimSpace(raw.NativeID) != "" {
		return Slug(source + "-" + raw.NativeID + "-" + raw.Title)
	}
	return ContentHash(raw.Title, company, location)
}

// ContentHash is the fallback id: sha1 hex over normalized segments joined
// by a delimiter, so a record without a location cannot collide with one
// that has a real location unless the other fields also match.
func ContentHash(title, company, location string) string {
	key := Normalize(title) + keySeparator + Normalize(company) + keySeparator + Normalize(location)
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
