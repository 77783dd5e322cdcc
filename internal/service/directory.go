// Package service implements the directory's read and write operations on
// top of the repositories.  Directory answers listing, search and detail
// queries; Mutations performs transactional writes.  Every show-time
// comparison goes through package schedule against one snapshot of the
// injected clock per call.
package service

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/juju/clock"

	"github.com/iliyamo/booking-directory/internal/repository"
)

// IntegrityPolicy decides what a read does with a show whose venue or
// artist reference does not resolve.
type IntegrityPolicy int

const (
	// IntegrityStrict fails the read with repository.ErrIntegrity.
	IntegrityStrict IntegrityPolicy = iota
	// IntegrityLenient skips the show, counts it in Anomalies and logs a
	// warning.
	IntegrityLenient
)

func (p IntegrityPolicy) String() string {
	if p == IntegrityLenient {
		return "lenient"
	}
	return "strict"
}

// ParseIntegrityPolicy parses "strict" or "lenient".  An empty string
// selects strict.
func ParseIntegrityPolicy(s string) (IntegrityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return IntegrityStrict, nil
	case "lenient":
		return IntegrityLenient, nil
	}
	return IntegrityStrict, fmt.Errorf("unknown integrity policy %q", s)
}

// Directory serves the read side: venue listing grouped by location,
// name search, detail pages and edit-form retrieval.
type Directory struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	clock   clock.Clock
	policy  IntegrityPolicy
}

// NewDirectory constructs a Directory over db.  clk supplies the
// reference instant for past/upcoming classification.
func NewDirectory(db *sqlx.DB, clk clock.Clock, policy IntegrityPolicy) *Directory {
	if db == nil || clk == nil {
		panic("nil dependency passed to NewDirectory")
	}
	return &Directory{
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		clock:   clk,
		policy:  policy,
	}
}
