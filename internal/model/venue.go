package model

// Venue represents a place that hosts shows.  A venue is located in a
// city/state pair which the public listing uses to group venues, and it
// owns zero or more shows through Show.VenueID.  This struct corresponds
// to a row in the `Venue` table.
//
// Fields:
//  ID                 – primary key identifier assigned by the store.
//  Name               – display name of the venue.
//  City, State        – location used for grouping.
//  Address            – street address.
//  Phone              – contact phone number.
//  Genres             – ordered genre tags, stored as one delimited column.
//  Website            – website URL.
//  ImageLink          – image URL.
//  FacebookLink       – social-profile URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text describing what the venue is seeking.
type Venue struct {
    ID                 int64  `db:"id" json:"id"`                                   // Venue.id
    Name               string `db:"name" json:"name"`                               // Venue.name
    City               string `db:"city" json:"city"`                               // Venue.city
    State              string `db:"state" json:"state"`                             // Venue.state
    Address            string `db:"address" json:"address"`                         // Venue.address
    Phone              string `db:"phone" json:"phone"`                             // Venue.phone
    Genres             Genres `db:"genres" json:"genres"`                           // Venue.genres
    Website            string `db:"website" json:"website"`                         // Venue.website
    ImageLink          string `db:"image_link" json:"image_link"`                   // Venue.image_link
    FacebookLink       string `db:"facebook_link" json:"facebook_link"`             // Venue.facebook_link
    SeekingTalent      bool   `db:"seeking_talent" json:"seeking_talent"`           // Venue.seeking_talent
    SeekingDescription string `db:"seeking_description" json:"seeking_description"` // Venue.seeking_description
}
