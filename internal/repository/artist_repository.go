package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/booking-directory/internal/model"
)

const artistColumns = "id, name, city, state, phone, genres, image_link, website, facebook_link, seeking_venue, seeking_description"

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sqlx.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// GetByID fetches an artist by its ID.  It returns ErrArtistNotFound if no
// row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	return getArtist(ctx, r.db, id)
}

// GetByIDTx is GetByID as seen by the caller's transaction.
func (r *ArtistRepo) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Artist, error) {
	return getArtist(ctx, tx, id)
}

func getArtist(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Artist, error) {
	var a model.Artist
	if err := sqlx.GetContext(ctx, q, &a, "SELECT "+artistColumns+" FROM `Artist` WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrArtistNotFound, id)
		}
		return nil, storageError("get artist", err)
	}
	return &a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	out := []model.Artist{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+artistColumns+" FROM `Artist` ORDER BY id"); err != nil {
		return nil, storageError("list artists", err)
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case,
// ordered by id.  An empty term matches every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	out := []model.Artist{}
	q := "SELECT " + artistColumns + " FROM `Artist` WHERE " + lowerExpr(r.db, "name") + " LIKE ? ESCAPE '!' ORDER BY id"
	if err := r.db.SelectContext(ctx, &out, q, likePattern(term)); err != nil {
		return nil, storageError("search artists", err)
	}
	return out, nil
}

// ExistsTx reports whether an artist with the id exists, as seen by tx.
func (r *ArtistRepo) ExistsTx(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	return existsTx(ctx, tx, "SELECT 1 FROM `Artist` WHERE id = ?", id)
}

// CreateTx inserts a new artist using the provided transaction and
// populates the generated ID.
func (r *ArtistRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, a *model.Artist) error {
	const q = "INSERT INTO `Artist` (name, city, state, phone, genres, image_link, website, facebook_link, seeking_venue, seeking_description)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.Website, a.FacebookLink,
		a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return storageError("insert artist", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageError("insert artist", err)
	}
	a.ID = id
	return nil
}

// UpdateTx overwrites every mutable column of the artist identified by
// a.ID, returning ErrArtistNotFound when the row does not exist.
func (r *ArtistRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, a *model.Artist) error {
	ok, err := r.ExistsTx(ctx, tx, a.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", ErrArtistNotFound, a.ID)
	}
	const q = "UPDATE `Artist` SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, website = ?," +
		" facebook_link = ?, seeking_venue = ?, seeking_description = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.Website, a.FacebookLink,
		a.SeekingVenue, a.SeekingDescription, a.ID); err != nil {
		return storageError("update artist", err)
	}
	return nil
}

// DeleteTx removes the artist row, returning ErrArtistNotFound when no
// row was deleted.
func (r *ArtistRepo) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM `Artist` WHERE id = ?", id)
	if err != nil {
		return storageError("delete artist", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storageError("delete artist", err)
	} else if n == 0 {
		return fmt.Errorf("%w: id %d", ErrArtistNotFound, id)
	}
	return nil
}
