package service

import (
	"time"

	"github.com/iliyamo/booking-directory/internal/model"
)

// Summary is one venue or artist in a listing or search result.
type Summary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	UpcomingShows int    `json:"num_upcoming_shows"`
}

// LocationGroup holds the venues sharing one city/state pair.
type LocationGroup struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// SearchResult is the answer to a name search.  Count always equals
// len(Results).
type SearchResult struct {
	Count   int       `json:"count"`
	Results []Summary `json:"data"`
}

// Ref identifies an artist in the flat artist list.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArtistAppearance is a show on a venue's page.
type ArtistAppearance struct {
	ShowID      int64     `json:"show_id"`
	ArtistID    int64     `json:"artist_id"`
	ArtistName  string    `json:"artist_name"`
	ArtistImage string    `json:"artist_image_link"`
	StartTime   time.Time `json:"start_time"`
}

// VenueAppearance is a show on an artist's page.
type VenueAppearance struct {
	ShowID     int64     `json:"show_id"`
	VenueID    int64     `json:"venue_id"`
	VenueName  string    `json:"venue_name"`
	VenueImage string    `json:"venue_image_link"`
	StartTime  time.Time `json:"start_time"`
}

// VenueDetail is a venue with its shows split into past and upcoming.
// Anomalies counts shows skipped under IntegrityLenient.
type VenueDetail struct {
	model.Venue
	PastShows          []ArtistAppearance `json:"past_shows"`
	UpcomingShows      []ArtistAppearance `json:"upcoming_shows"`
	PastShowsCount     int                `json:"past_shows_count"`
	UpcomingShowsCount int                `json:"upcoming_shows_count"`
	Anomalies          int                `json:"anomalies,omitempty"`
}

// ArtistDetail is an artist with its shows split into past and upcoming.
type ArtistDetail struct {
	model.Artist
	PastShows          []VenueAppearance `json:"past_shows"`
	UpcomingShows      []VenueAppearance `json:"upcoming_shows"`
	PastShowsCount     int               `json:"past_shows_count"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
	Anomalies          int               `json:"anomalies,omitempty"`
}

// ShowListing is one row of the all-shows page.
type ShowListing struct {
	ShowID      int64     `json:"show_id"`
	VenueID     int64     `json:"venue_id"`
	VenueName   string    `json:"venue_name"`
	ArtistID    int64     `json:"artist_id"`
	ArtistName  string    `json:"artist_name"`
	ArtistImage string    `json:"artist_image_link"`
	StartTime   time.Time `json:"start_time"`
}
