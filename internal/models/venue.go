package models

import (
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Address            string   `bun:"address,notnull" json:"address"`
	Phone              string   `bun:"phone" json:"phone"`
	ImageLink          string   `bun:"image_link" json:"image_link"`
	FacebookLink       string   `bun:"facebook_link" json:"facebook_link"`
	Website            string   `bun:"website" json:"website"`
	Genres             []string `bun:"genres" json:"genres"`
	SeekingTalent      bool     `bun:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `bun:"seeking_description" json:"seeking_description"`

	Shows []*Show `bun:"rel:has-many,join:id=venue_id" json:"-"`
}

// VenueSummary is the list/search row for a venue.
type VenueSummary struct {
	ID               int64  `bun:"id" json:"id"`
	Name             string `bun:"name" json:"name"`
	City             string `bun:"city" json:"city"`
	State            string `bun:"state" json:"state"`
	NumUpcomingShows int    `bun:"-" json:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueDetail is a venue together with its shows split around the request time.
type VenueDetail struct {
	Venue
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}
