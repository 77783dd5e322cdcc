package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/booking-directory/internal/metrics"
	"github.com/iliyamo/booking-directory/internal/model"
	"github.com/iliyamo/booking-directory/internal/schedule"
)

// VenueDetail returns the venue with its shows split into past and
// upcoming relative to now.  It fails with repository.ErrVenueNotFound
// when the venue does not exist.
func (d *Directory) VenueDetail(ctx context.Context, id int64) (det *VenueDetail, err error) {
	defer func(start time.Time) { metrics.Observe("venue_detail", start, err) }(time.Now())
	now := d.clock.Now()

	v, err := d.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venue %d shows: %w", id, err)
	}

	det = &VenueDetail{Venue: *v}
	shows := make([]ArtistAppearance, 0, len(rows))
	for _, row := range rows {
		if !row.ArtistResolved() {
			if err := d.dangling("venue_detail", row); err != nil {
				return nil, err
			}
			det.Anomalies++
			continue
		}
		shows = append(shows, ArtistAppearance{
			ShowID:      row.ID,
			ArtistID:    row.ArtistID,
			ArtistName:  row.ArtistName.String,
			ArtistImage: row.ArtistImage.String,
			StartTime:   row.StartTime,
		})
	}
	det.PastShows, det.UpcomingShows = schedule.Partition(shows, now, func(s ArtistAppearance) time.Time { return s.StartTime })
	det.PastShowsCount = len(det.PastShows)
	det.UpcomingShowsCount = len(det.UpcomingShows)
	metrics.Anomalies("venue_detail", det.Anomalies)
	return det, nil
}

// ArtistDetail returns the artist with its shows split into past and
// upcoming relative to now.  It fails with repository.ErrArtistNotFound
// when the artist does not exist.
func (d *Directory) ArtistDetail(ctx context.Context, id int64) (det *ArtistDetail, err error) {
	defer func(start time.Time) { metrics.Observe("artist_detail", start, err) }(time.Now())
	now := d.clock.Now()

	a, err := d.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := d.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("artist %d shows: %w", id, err)
	}

	det = &ArtistDetail{Artist: *a}
	shows := make([]VenueAppearance, 0, len(rows))
	for _, row := range rows {
		if !row.VenueResolved() {
			if err := d.dangling("artist_detail", row); err != nil {
				return nil, err
			}
			det.Anomalies++
			continue
		}
		shows = append(shows, VenueAppearance{
			ShowID:     row.ID,
			VenueID:    row.VenueID,
			VenueName:  row.VenueName.String,
			VenueImage: row.VenueImage.String,
			StartTime:  row.StartTime,
		})
	}
	det.PastShows, det.UpcomingShows = schedule.Partition(shows, now, func(s VenueAppearance) time.Time { return s.StartTime })
	det.PastShowsCount = len(det.PastShows)
	det.UpcomingShowsCount = len(det.UpcomingShows)
	metrics.Anomalies("artist_detail", det.Anomalies)
	return det, nil
}

// Venue returns the full venue record, as used to prefill an edit form.
func (d *Directory) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	return d.venues.GetByID(ctx, id)
}

// Artist returns the full artist record, as used to prefill an edit form.
func (d *Directory) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	return d.artists.GetByID(ctx, id)
}
