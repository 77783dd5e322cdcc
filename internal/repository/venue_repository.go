// Package repository contains data access logic separated from the
// services.  This file holds the Venue queries.  Read methods use the
// repository's pool directly; methods ending in Tx run inside a
// transaction owned by the caller (see Store.WithTx).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/booking-directory/internal/model"
)

const venueColumns = "id, name, city, state, address, phone, genres, website, image_link, facebook_link, seeking_talent, seeking_description"

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sqlx.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	return getVenue(ctx, r.db, id)
}

// GetByIDTx is GetByID as seen by the caller's transaction.
func (r *VenueRepo) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Venue, error) {
	return getVenue(ctx, tx, id)
}

func getVenue(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Venue, error) {
	var v model.Venue
	if err := sqlx.GetContext(ctx, q, &v, "SELECT "+venueColumns+" FROM `Venue` WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrVenueNotFound, id)
		}
		return nil, storageError("get venue", err)
	}
	return &v, nil
}

// ListAll returns every venue ordered by location (state, city) and then
// id, so venues sharing a location are adjacent.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	out := []model.Venue{}
	err := r.db.SelectContext(ctx, &out, "SELECT "+venueColumns+" FROM `Venue` ORDER BY state, city, id")
	if err != nil {
		return nil, storageError("list venues", err)
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case,
// ordered by id.  An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	out := []model.Venue{}
	q := "SELECT " + venueColumns + " FROM `Venue` WHERE " + lowerExpr(r.db, "name") + " LIKE ? ESCAPE '!' ORDER BY id"
	if err := r.db.SelectContext(ctx, &out, q, likePattern(term)); err != nil {
		return nil, storageError("search venues", err)
	}
	return out, nil
}

// ExistsTx reports whether a venue with the id exists, as seen by tx.
func (r *VenueRepo) ExistsTx(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	return existsTx(ctx, tx, "SELECT 1 FROM `Venue` WHERE id = ?", id)
}

// CreateTx inserts a new venue using the provided transaction.  On
// success the venue's ID field is populated with the generated value.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, v *model.Venue) error {
	const q = "INSERT INTO `Venue` (name, city, state, address, phone, genres, website, image_link, facebook_link, seeking_talent, seeking_description)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres, v.Website, v.ImageLink, v.FacebookLink,
		v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return storageError("insert venue", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageError("insert venue", err)
	}
	v.ID = id
	return nil
}

// UpdateTx overwrites every mutable column of the venue identified by
// v.ID.  It returns ErrVenueNotFound when the row does not exist.  The
// existence check runs first because MySQL reports zero affected rows
// for an update that leaves the values unchanged.
func (r *VenueRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, v *model.Venue) error {
	ok, err := r.ExistsTx(ctx, tx, v.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", ErrVenueNotFound, v.ID)
	}
	const q = "UPDATE `Venue` SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?, website = ?," +
		" image_link = ?, facebook_link = ?, seeking_talent = ?, seeking_description = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres, v.Website, v.ImageLink, v.FacebookLink,
		v.SeekingTalent, v.SeekingDescription, v.ID); err != nil {
		return storageError("update venue", err)
	}
	return nil
}

// DeleteTx removes the venue row.  Dependent shows must already be gone;
// see ShowRepo.DeleteByVenueTx.  It returns ErrVenueNotFound when no row
// was deleted.
func (r *VenueRepo) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM `Venue` WHERE id = ?", id)
	if err != nil {
		return storageError("delete venue", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storageError("delete venue", err)
	} else if n == 0 {
		return fmt.Errorf("%w: id %d", ErrVenueNotFound, id)
	}
	return nil
}
