package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Show struct {
	bun.BaseModel `bun:"table:shows"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`

	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
}

// ShowListing is a show as seen from one side of the venue/artist pair:
// the counterpart's id, name and image travel with the start time.
type ShowListing struct {
	ID               int64     `json:"id"`
	CounterpartID    int64     `json:"counterpart_id"`
	CounterpartName  string    `json:"counterpart_name"`
	CounterpartImage string    `json:"counterpart_image_link"`
	StartTime        time.Time `json:"start_time"`
}

// ShowRow is one line of the /shows page.
type ShowRow struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}
