package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/booking-directory/internal/metrics"
	"github.com/iliyamo/booking-directory/internal/schedule"
)

// SearchVenues returns the venues whose name contains term, ignoring
// case, each with its upcoming show count.  An empty term matches every
// venue.  Results are ordered by id.
func (d *Directory) SearchVenues(ctx context.Context, term string) (res SearchResult, err error) {
	defer func(start time.Time) { metrics.Observe("search_venues", start, err) }(time.Now())
	now := d.clock.Now()

	venues, err := d.venues.SearchByName(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search venues: %w", err)
	}
	starts, err := d.shows.StartTimesByVenue(ctx, venueIDs(venues))
	if err != nil {
		return SearchResult{}, fmt.Errorf("count upcoming shows: %w", err)
	}
	res.Results = make([]Summary, 0, len(venues))
	for _, v := range venues {
		res.Results = append(res.Results, Summary{
			ID:            v.ID,
			Name:          v.Name,
			UpcomingShows: schedule.CountUpcoming(starts[v.ID], now),
		})
	}
	res.Count = len(res.Results)
	return res, nil
}

// SearchArtists is the artist counterpart of SearchVenues.
func (d *Directory) SearchArtists(ctx context.Context, term string) (res SearchResult, err error) {
	defer func(start time.Time) { metrics.Observe("search_artists", start, err) }(time.Now())
	now := d.clock.Now()

	artists, err := d.artists.SearchByName(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search artists: %w", err)
	}
	starts, err := d.shows.StartTimesByArtist(ctx, artistIDs(artists))
	if err != nil {
		return SearchResult{}, fmt.Errorf("count upcoming shows: %w", err)
	}
	res.Results = make([]Summary, 0, len(artists))
	for _, a := range artists {
		res.Results = append(res.Results, Summary{
			ID:            a.ID,
			Name:          a.Name,
			UpcomingShows: schedule.CountUpcoming(starts[a.ID], now),
		})
	}
	res.Count = len(res.Results)
	return res, nil
}
