// Package forms decodes and validates the venue, artist and show forms.
package forms

import (
	"strconv"
	"strings"

	"fyyur/internal/models"
)

type VenueForm struct {
	Name               string   `form:"name" binding:"required,notblank,max=120"`
	City               string   `form:"city" binding:"required,notblank,max=120"`
	State              string   `form:"state" binding:"required,state"`
	Address            string   `form:"address" binding:"required,notblank,max=120"`
	Phone              string   `form:"phone" binding:"omitempty,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	Genres             []string `form:"genres" binding:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=500"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" binding:"max=500"`
}

// Venue builds the record described by the form. The id is left to the caller.
func (f *VenueForm) Venue() *models.Venue {
	return &models.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		Genres:             f.Genres,
		SeekingTalent:      ParseCheckbox(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormFrom pre-populates the edit form.
func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

type ArtistForm struct {
	Name               string   `form:"name" binding:"required,notblank,max=120"`
	City               string   `form:"city" binding:"required,notblank,max=120"`
	State              string   `form:"state" binding:"required,state"`
	Phone              string   `form:"phone" binding:"omitempty,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	Genres             []string `form:"genres" binding:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=500"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" binding:"max=500"`
}

func (f *ArtistForm) Artist() *models.Artist {
	return &models.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       ParseCheckbox(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// ShowForm books an artist at a venue. Ids stay strings until validated so
// that a non-numeric value is a field error rather than a decode failure.
type ShowForm struct {
	ArtistID  string `form:"artist_id" binding:"required,number"`
	VenueID   string `form:"venue_id" binding:"required,number"`
	StartTime string `form:"start_time" binding:"required,starttime"`
}

// Show converts a validated form. It fails only when called on a form
// that did not pass Bind.
func (f *ShowForm) Show() (*models.Show, error) {
	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil {
		return nil, &ValidationError{Fields: Errors{"artist_id": "Must be a number."}}
	}
	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil {
		return nil, &ValidationError{Fields: Errors{"venue_id": "Must be a number."}}
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, &ValidationError{Fields: Errors{"start_time": err.Error()}}
	}
	return &models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

func checkbox(b bool) string {
	if b {
		return "y"
	}
	return ""
}

// SearchForm is the free-text search box.
type SearchForm struct {
	SearchTerm string `form:"search_term"`
}

// Term is the trimmed search text. Empty matches everything.
func (f *SearchForm) Term() string {
	return strings.TrimSpace(f.SearchTerm)
}
