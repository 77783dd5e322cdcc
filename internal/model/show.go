package model

import "time"

// Show represents a scheduled performance of one artist at one venue.
// Both references must resolve whenever the show is read for display.
// StartTime is always held in UTC.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist playing the show.
//  VenueID   – venue hosting the show.
//  StartTime – when the show begins.
type Show struct {
    ID        int64     `db:"id" json:"id"`                 // Show.id
    ArtistID  int64     `db:"artist_id" json:"artist_id"`   // Show.artist_id
    VenueID   int64     `db:"venue_id" json:"venue_id"`     // Show.venue_id
    StartTime time.Time `db:"start_time" json:"start_time"` // Show.start_time
}
