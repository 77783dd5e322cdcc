package model

// Artist represents a performer who plays shows at venues.  Artists
// have no street address; otherwise the shape mirrors Venue.  This
// struct corresponds to a row in the `Artist` table.
//
// Fields:
//  ID                 – primary key identifier assigned by the store.
//  Name               – display name of the artist.
//  City, State        – home location of the artist.
//  Phone              – contact phone number.
//  Genres             – ordered genre tags.
//  ImageLink          – image URL.
//  Website            – website URL.
//  FacebookLink       – social-profile URL.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free text describing what the artist is seeking.
type Artist struct {
    ID                 int64  `db:"id" json:"id"`                                   // Artist.id
    Name               string `db:"name" json:"name"`                               // Artist.name
    City               string `db:"city" json:"city"`                               // Artist.city
    State              string `db:"state" json:"state"`                             // Artist.state
    Phone              string `db:"phone" json:"phone"`                             // Artist.phone
    Genres             Genres `db:"genres" json:"genres"`                           // Artist.genres
    ImageLink          string `db:"image_link" json:"image_link"`                   // Artist.image_link
    Website            string `db:"website" json:"website"`                         // Artist.website
    FacebookLink       string `db:"facebook_link" json:"facebook_link"`             // Artist.facebook_link
    SeekingVenue       bool   `db:"seeking_venue" json:"seeking_venue"`             // Artist.seeking_venue
    SeekingDescription string `db:"seeking_description" json:"seeking_description"` // Artist.seeking_description
}
