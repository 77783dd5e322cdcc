// Package repository contains data access logic for Show operations.  A
// Show links one artist to one venue at a start time.  Read queries join
// both counterparts with LEFT JOIN so that a show whose artist or venue
// has disappeared is still returned and can be reported by the caller
// instead of silently vanishing.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/booking-directory/internal/model"
)

// ShowRow is a show joined with the display fields of its artist and
// venue.  ArtistRef and VenueRef are NULL when the reference does not
// resolve.
type ShowRow struct {
	ID          int64          `db:"id"`
	StartTime   time.Time      `db:"start_time"`
	ArtistID    int64          `db:"artist_id"`
	VenueID     int64          `db:"venue_id"`
	ArtistRef   sql.NullInt64  `db:"artist_ref"`
	ArtistName  sql.NullString `db:"artist_name"`
	ArtistImage sql.NullString `db:"artist_image"`
	VenueRef    sql.NullInt64  `db:"venue_ref"`
	VenueName   sql.NullString `db:"venue_name"`
	VenueImage  sql.NullString `db:"venue_image"`
}

// ArtistResolved reports whether the show's artist exists.
func (s ShowRow) ArtistResolved() bool { return s.ArtistRef.Valid }

// VenueResolved reports whether the show's venue exists.
func (s ShowRow) VenueResolved() bool { return s.VenueRef.Valid }

const showJoinSelect = "SELECT s.id, s.start_time, s.artist_id, s.venue_id," +
	" a.id AS artist_ref, a.name AS artist_name, a.image_link AS artist_image," +
	" v.id AS venue_ref, v.name AS venue_name, v.image_link AS venue_image" +
	" FROM `Show` s" +
	" LEFT JOIN `Artist` a ON a.id = s.artist_id" +
	" LEFT JOIN `Venue` v ON v.id = s.venue_id"

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sqlx.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// CreateTx inserts a new show using the provided transaction and assigns
// the generated ID.  The start time is stored in UTC.  Callers verify
// that both references resolve before calling.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, s *model.Show) error {
	s.StartTime = s.StartTime.UTC()
	const q = "INSERT INTO `Show` (start_time, artist_id, venue_id) VALUES (?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, s.StartTime, s.ArtistID, s.VenueID)
	if err != nil {
		return storageError("insert show", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageError("insert show", err)
	}
	s.ID = id
	return nil
}

// ListByVenue returns the shows hosted by a venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]ShowRow, error) {
	return r.selectRows(ctx, "list venue shows", showJoinSelect+" WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows played by an artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]ShowRow, error) {
	return r.selectRows(ctx, "list artist shows", showJoinSelect+" WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowRow, error) {
	return r.selectRows(ctx, "list shows", showJoinSelect+" ORDER BY s.start_time, s.id")
}

func (r *ShowRepo) selectRows(ctx context.Context, op, q string, args ...any) ([]ShowRow, error) {
	out := []ShowRow{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, storageError(op, err)
	}
	for i := range out {
		out[i].StartTime = out[i].StartTime.UTC()
	}
	return out, nil
}

// StartTimesByVenue returns the start times of all shows hosted by the
// given venues, keyed by venue id.  Venues without shows are absent.
func (r *ShowRepo) StartTimesByVenue(ctx context.Context, venueIDs []int64) (map[int64][]time.Time, error) {
	return r.startTimes(ctx, "venue_id", venueIDs)
}

// StartTimesByArtist is the artist counterpart of StartTimesByVenue.
func (r *ShowRepo) StartTimesByArtist(ctx context.Context, artistIDs []int64) (map[int64][]time.Time, error) {
	return r.startTimes(ctx, "artist_id", artistIDs)
}

// startTimes loads (owner, start_time) pairs for the ids in one IN query.
// column is one of the two fixed foreign-key column names.
func (r *ShowRepo) startTimes(ctx context.Context, column string, ids []int64) (map[int64][]time.Time, error) {
	out := make(map[int64][]time.Time, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In("SELECT "+column+" AS owner_id, start_time FROM `Show` WHERE "+column+" IN (?)", ids)
	if err != nil {
		return nil, storageError("build start time query", err)
	}
	var rows []struct {
		OwnerID   int64     `db:"owner_id"`
		StartTime time.Time `db:"start_time"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, storageError("load start times", err)
	}
	for _, row := range rows {
		out[row.OwnerID] = append(out[row.OwnerID], row.StartTime.UTC())
	}
	return out, nil
}

// DeleteByVenueTx removes every show hosted by the venue and returns the
// number of rows deleted.
func (r *ShowRepo) DeleteByVenueTx(ctx context.Context, tx *sqlx.Tx, venueID int64) (int64, error) {
	return deleteShowsTx(ctx, tx, "DELETE FROM `Show` WHERE venue_id = ?", venueID)
}

// DeleteByArtistTx removes every show played by the artist and returns
// the number of rows deleted.
func (r *ShowRepo) DeleteByArtistTx(ctx context.Context, tx *sqlx.Tx, artistID int64) (int64, error) {
	return deleteShowsTx(ctx, tx, "DELETE FROM `Show` WHERE artist_id = ?", artistID)
}

func deleteShowsTx(ctx context.Context, tx *sqlx.Tx, q string, id int64) (int64, error) {
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return 0, storageError("delete shows", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("delete shows", err)
	}
	return n, nil
}
