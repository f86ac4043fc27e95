package models

import (
	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Phone              string   `bun:"phone" json:"phone"`
	Genres             []string `bun:"genres" json:"genres"`
	ImageLink          string   `bun:"image_link" json:"image_link"`
	FacebookLink       string   `bun:"facebook_link" json:"facebook_link"`
	Website            string   `bun:"website" json:"website"`
	SeekingVenue       bool     `bun:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `bun:"seeking_description" json:"seeking_description"`

	Shows []*Show `bun:"rel:has-many,join:id=artist_id" json:"-"`
}

type ArtistSummary struct {
	ID               int64  `bun:"id" json:"id"`
	Name             string `bun:"name" json:"name"`
	NumUpcomingShows int    `bun:"-" json:"num_upcoming_shows"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}
