package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/booking-directory/internal/metrics"
	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/repository"
	"github.com/iliyamo/booking-directory/internal/schedule"
)

type location struct {
	city, state string
}

// VenuesByLocation groups every venue under its own (city, state) pair
// with the number of upcoming shows per venue.  Groups are ordered by
// state then city, venues inside a group by id.
func (d *Directory) VenuesByLocation(ctx context.Context) (groups []LocationGroup, err error) {
	defer func(start time.Time) { metrics.Observe("venues_by_location", start, err) }(time.Now())
	now := d.clock.Now()

	venues, err := d.venues.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	starts, err := d.shows.StartTimesByVenue(ctx, venueIDs(venues))
	if err != nil {
		return nil, fmt.Errorf("count upcoming shows: %w", err)
	}

	groups = []LocationGroup{}
	index := make(map[location]int)
	for _, v := range venues {
		key := location{city: v.City, state: v.State}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LocationGroup{City: v.City, State: v.State, Venues: []Summary{}})
		}
		groups[i].Venues = append(groups[i].Venues, Summary{
			ID:            v.ID,
			Name:          v.Name,
			UpcomingShows: schedule.CountUpcoming(starts[v.ID], now),
		})
	}
	return groups, nil
}

// ListArtists returns every artist's id and name ordered by id.
func (d *Directory) ListArtists(ctx context.Context) (refs []Ref, err error) {
	defer func(start time.Time) { metrics.Observe("list_artists", start, err) }(time.Now())

	artists, err := d.artists.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	refs = make([]Ref, 0, len(artists))
	for _, a := range artists {
		refs = append(refs, Ref{ID: a.ID, Name: a.Name})
	}
	return refs, nil
}

// ListShows returns every show ordered by start time together with its
// venue and artist display fields.  Shows with a dangling reference are
// handled per the integrity policy.
func (d *Directory) ListShows(ctx context.Context) (out []ShowListing, err error) {
	defer func(start time.Time) { metrics.Observe("list_shows", start, err) }(time.Now())

	rows, err := d.shows.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	out = make([]ShowListing, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !row.VenueResolved() || !row.ArtistResolved() {
			if err := d.dangling("list_shows", row); err != nil {
				return nil, err
			}
			skipped++
			continue
		}
		out = append(out, ShowListing{
			ShowID:      row.ID,
			VenueID:     row.VenueID,
			VenueName:   row.VenueName.String,
			ArtistID:    row.ArtistID,
			ArtistName:  row.ArtistName.String,
			ArtistImage: row.ArtistImage.String,
			StartTime:   row.StartTime,
		})
	}
	metrics.Anomalies("list_shows", skipped)
	return out, nil
}

// dangling applies the integrity policy to a show whose counterpart did
// not resolve.  It returns a non-nil error under IntegrityStrict.
func (d *Directory) dangling(op string, row repository.ShowRow) error {
	err := fmt.Errorf("%w: show %d references artist %d (resolved=%t) and venue %d (resolved=%t)",
		repository.ErrIntegrity, row.ID, row.ArtistID, row.ArtistResolved(), row.VenueID, row.VenueResolved())
	if d.policy == IntegrityStrict {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"operation": op,
		"show_id":   row.ID,
		"artist_id": row.ArtistID,
		"venue_id":  row.VenueID,
	}).Warn("skipping show with unresolvable reference")
	return nil
}

func venueIDs(venues []model.Venue) []int64 {
	ids := make([]int64, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	return ids
}

func artistIDs(artists []model.Artist) []int64 {
	ids := make([]int64, 0, len(artists))
	for _, a := range artists {
		ids = append(ids, a.ID)
	}
	return ids
}
