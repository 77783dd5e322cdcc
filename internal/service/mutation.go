package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/booking-directory/internal/metrics"
	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
)

// VenueInput carries the editable fields of a venue.  Update overwrites
// every field, so an omitted value clears the stored one.
type VenueInput struct {
	Name               string       `json:"name"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Address            string       `json:"address"`
	Phone              string       `json:"phone"`
	Genres             model.Genres `json:"genres"`
	Website            string       `json:"website"`
	ImageLink          string       `json:"image_link"`
	FacebookLink       string       `json:"facebook_link"`
	SeekingTalent      bool         `json:"seeking_talent"`
	SeekingDescription string       `json:"seeking_description"`
}

// Validate checks the fields the store cannot check on its own.
func (in VenueInput) Validate() error {
	return validateEntity("venue", in.Name, in.Genres)
}

func (in VenueInput) venue(id int64) *model.Venue {
	return &model.Venue{
		ID:                 id,
		Name:               strings.TrimSpace(in.Name),
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              in.Phone,
		Genres:             normalizeGenres(in.Genres),
		Website:            in.Website,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
	}
}

// ArtistInput carries the editable fields of an artist.
type ArtistInput struct {
	Name               string       `json:"name"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Genres             model.Genres `json:"genres"`
	ImageLink          string       `json:"image_link"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	SeekingVenue       bool         `json:"seeking_venue"`
	SeekingDescription string       `json:"seeking_description"`
}

// Validate checks the fields the store cannot check on its own.
func (in ArtistInput) Validate() error {
	return validateEntity("artist", in.Name, in.Genres)
}

func (in ArtistInput) artist(id int64) *model.Artist {
	return &model.Artist{
		ID:                 id,
		Name:               strings.TrimSpace(in.Name),
		City:               in.City,
		State:              in.State,
		Phone:              in.Phone,
		Genres:             normalizeGenres(in.Genres),
		ImageLink:          in.ImageLink,
		Website:            in.Website,
		FacebookLink:       in.FacebookLink,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
	}
}

// ShowInput links an artist to a venue at a start time.
type ShowInput struct {
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// Validate checks the start time.  Reference resolution happens inside
// the creating transaction.
func (in ShowInput) Validate() error {
	if in.StartTime.IsZero() {
		return fmt.Errorf("%w: show start_time is required", repository.ErrValidation)
	}
	return nil
}

func validateEntity(kind, name string, genres model.Genres) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name is required", repository.ErrValidation, kind)
	}
	if err := genres.Validate(); err != nil {
		return fmt.Errorf("%w: %s %w", repository.ErrValidation, kind, err)
	}
	return nil
}

func normalizeGenres(g model.Genres) model.Genres {
	if g == nil {
		return model.Genres{}
	}
	return g
}

// EventPublisher receives an event after each committed mutation.
// queue.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.DirectoryEvent) error
}

// Mutations performs the write side.  Every operation runs in exactly
// one transaction: it either commits completely or leaves the store
// untouched and returns a typed error.
type Mutations struct {
	store   *repository.Store
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	events  EventPublisher
}

// NewMutations constructs the write service over db.  events may be nil,
// in which case no events are published.
func NewMutations(db *sqlx.DB, events EventPublisher) *Mutations {
	if db == nil {
		panic("nil db passed to NewMutations")
	}
	return &Mutations{
		store:   repository.NewStore(db),
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		events:  events,
	}
}

// CreateVenue inserts a venue and returns its id.
func (m *Mutations) CreateVenue(ctx context.Context, in VenueInput) (id int64, err error) {
	defer func(start time.Time) { metrics.Observe("create_venue", start, err) }(time.Now())
	if err := in.Validate(); err != nil {
		return 0, err
	}
	v := in.venue(0)
	if err := m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return m.venues.CreateTx(ctx, tx, v)
	}); err != nil {
		return 0, fmt.Errorf("create venue: %w", err)
	}
	m.publish(ctx, queue.NewDirectoryEvent(queue.VenueCreated, v.ID, v.Name))
	return v.ID, nil
}

// UpdateVenue overwrites every field of the venue.  It returns
// repository.ErrVenueNotFound when id does not exist.
func (m *Mutations) UpdateVenue(ctx context.Context, id int64, in VenueInput) (err error) {
	defer func(start time.Time) { metrics.Observe("update_venue", start, err) }(time.Now())
	if err := in.Validate(); err != nil {
		return err
	}
	v := in.venue(id)
	if err := m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return m.venues.UpdateTx(ctx, tx, v)
	}); err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	m.publish(ctx, queue.NewDirectoryEvent(queue.VenueUpdated, id, v.Name))
	return nil
}

// DeleteVenue removes the venue and every show it hosts.  It returns
// repository.ErrVenueNotFound when id does not exist.
func (m *Mutations) DeleteVenue(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.Observe("delete_venue", start, err) }(time.Now())
	var (
		name    string
		removed int64
	)
	err = m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		v, err := m.venues.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		name = v.Name
		if removed, err = m.shows.DeleteByVenueTx(ctx, tx, id); err != nil {
			return err
		}
		return m.venues.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	ev := queue.NewDirectoryEvent(queue.VenueDeleted, id, name)
	ev.Detail = fmt.Sprintf("shows_removed=%d", removed)
	m.publish(ctx, ev)
	return nil
}

// CreateArtist inserts an artist and returns its id.
func (m *Mutations) CreateArtist(ctx context.Context, in ArtistInput) (id int64, err error) {
	defer func(start time.Time) { metrics.Observe("create_artist", start, err) }(time.Now())
	if err := in.Validate(); err != nil {
		return 0, err
	}
	a := in.artist(0)
	if err := m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return m.artists.CreateTx(ctx, tx, a)
	}); err != nil {
		return 0, fmt.Errorf("create artist: %w", err)
	}
	m.publish(ctx, queue.NewDirectoryEvent(queue.ArtistCreated, a.ID, a.Name))
	return a.ID, nil
}

// UpdateArtist overwrites every field of the artist.
func (m *Mutations) UpdateArtist(ctx context.Context, id int64, in ArtistInput) (err error) {
	defer func(start time.Time) { metrics.Observe("update_artist", start, err) }(time.Now())
	if err := in.Validate(); err != nil {
		return err
	}
	a := in.artist(id)
	if err := m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return m.artists.UpdateTx(ctx, tx, a)
	}); err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	m.publish(ctx, queue.NewDirectoryEvent(queue.ArtistUpdated, id, a.Name))
	return nil
}

// DeleteArtist removes the artist and every show it plays.
func (m *Mutations) DeleteArtist(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.Observe("delete_artist", start, err) }(time.Now())
	var (
		name    string
		removed int64
	)
	err = m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		a, err := m.artists.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		name = a.Name
		if removed, err = m.shows.DeleteByArtistTx(ctx, tx, id); err != nil {
			return err
		}
		return m.artists.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	ev := queue.NewDirectoryEvent(queue.ArtistDeleted, id, name)
	ev.Detail = fmt.Sprintf("shows_removed=%d", removed)
	m.publish(ctx, ev)
	return nil
}

// CreateShow inserts a show after checking, inside the same transaction,
// that both the artist and the venue exist.  A missing reference is a
// validation error that also matches repository.ErrNotFound; no row is
// inserted.
func (m *Mutations) CreateShow(ctx context.Context, in ShowInput) (id int64, err error) {
	defer func(start time.Time) { metrics.Observe("create_show", start, err) }(time.Now())
	if err := in.Validate(); err != nil {
		return 0, err
	}
	s := &model.Show{ArtistID: in.ArtistID, VenueID: in.VenueID, StartTime: in.StartTime.UTC()}
	var artistName, venueName string
	err = m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		a, err := m.artists.GetByIDTx(ctx, tx, in.ArtistID)
		if err != nil {
			return referenceError(err)
		}
		v, err := m.venues.GetByIDTx(ctx, tx, in.VenueID)
		if err != nil {
			return referenceError(err)
		}
		artistName, venueName = a.Name, v.Name
		return m.shows.CreateTx(ctx, tx, s)
	})
	if err != nil {
		return 0, fmt.Errorf("create show: %w", err)
	}
	ev := queue.NewDirectoryEvent(queue.ShowCreated, s.ID, artistName+" @ "+venueName)
	ev.Detail = fmt.Sprintf("artist_id=%d venue_id=%d start_time=%s",
		s.ArtistID, s.VenueID, s.StartTime.Format(time.RFC3339))
	m.publish(ctx, ev)
	return s.ID, nil
}

// referenceError turns a failed counterpart lookup into a validation
// error.  Storage failures pass through unchanged.
func referenceError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", repository.ErrValidation, err)
	}
	return err
}

// publish hands ev to the configured publisher.  The mutation has already
// committed, so a failure is logged and otherwise ignored.
func (m *Mutations) publish(ctx context.Context, ev queue.DirectoryEvent) {
	if m.events == nil {
		return
	}
	if err := m.events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_id":  ev.ID,
			"type":      ev.Type,
			"entity_id": ev.EntityID,
		}).Warn("directory event not published")
	}
}
