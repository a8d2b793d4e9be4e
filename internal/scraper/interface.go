// Package scraper holds one adapter per employer career board. Each
// adapter knows how to fetch and parse exactly one site and emits raw
// records; normalization policy lives in the Options it declares.
package scraper

import (
	"context"
	"errors"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/normalize"
)

var ErrNotImplemented = errors.New("scraper not implemented")

// Source is the single capability a board adapter exposes: enumerate the
// postings currently listed. Fetch owns all site-specific mechanics
// (pagination, rendering, detail-page follow-ups) and must respect ctx.
type Source interface {
	Name() string
	Options() normalize.Options
	Fetch(ctx context.Context) ([]models.RawJob, error)
}
