// Package schedule splits shows into upcoming and past relative to a
// reference time. Nothing here is stored: the split is recomputed on every
// read.
package schedule

import (
	"time"

	"fyyur/internal/models"
)

// IsUpcoming reports whether a show starting at start is still ahead of now.
// A show starting exactly at now is past.
func IsUpcoming(start, now time.Time) bool {
	return start.After(now)
}

// Split partitions shows around now, keeping input order in both halves.
// Both results are non-nil so templates can range over them directly.
func Split(now time.Time, shows []models.ShowListing) (upcoming, past []models.ShowListing) {
	upcoming = []models.ShowListing{}
	past = []models.ShowListing{}
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return upcoming, past
}

// ForVenue turns a venue's shows into listings naming the artist.
func ForVenue(shows []*models.Show) []models.ShowListing {
	out := make([]models.ShowListing, 0, len(shows))
	for _, s := range shows {
		l := models.ShowListing{ID: s.ID, CounterpartID: s.ArtistID, StartTime: s.StartTime}
		if s.Artist != nil {
			l.CounterpartName = s.Artist.Name
			l.CounterpartImage = s.Artist.ImageLink
		}
		out = append(out, l)
	}
	return out
}

// ForArtist turns an artist's shows into listings naming the venue.
func ForArtist(shows []*models.Show) []models.ShowListing {
	out := make([]models.ShowListing, 0, len(shows))
	for _, s := range shows {
		l := models.ShowListing{ID: s.ID, CounterpartID: s.VenueID, StartTime: s.StartTime}
		if s.Venue != nil {
			l.CounterpartName = s.Venue.Name
			l.CounterpartImage = s.Venue.ImageLink
		}
		out = append(out, l)
	}
	return out
}
