package db_test

import (
	"context"
	"testing"
	"time"

	"fyyur/internal/artists/db"
	"fyyur/internal/database/dbtest"
	"fyyur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	bunDB := dbtest.New(t)
	return &db.DB{Bun: bunDB}, bunDB
}

func TestCreateAndGetArtist(t *testing.T) {
	artistDB, _ := setupTestDB(t)
	ctx := context.Background()

	artist := &models.Artist{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             []string{"Rock n Roll"},
		ImageLink:          "https://example.com/gnp.png",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		Website:            "https://www.gunsnpetalsband.com",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows in the Bay Area",
	}

	id, err := artistDB.CreateArtist(ctx, artist)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := artistDB.GetArtistByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, artist.Name, got.Name)
	assert.Equal(t, artist.City, got.City)
	assert.Equal(t, artist.State, got.State)
	assert.Equal(t, artist.Phone, got.Phone)
	assert.Equal(t, artist.Genres, got.Genres)
	assert.Equal(t, artist.ImageLink, got.ImageLink)
	assert.Equal(t, artist.FacebookLink, got.FacebookLink)
	assert.Equal(t, artist.Website, got.Website)
	assert.True(t, got.SeekingVenue)
	assert.Equal(t, artist.SeekingDescription, got.SeekingDescription)

	_, err = artistDB.GetArtistByID(ctx, id+1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateArtist(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()

	artist := dbtest.Artist(t, bunDB, models.Artist{})
	artist.City = "Oakland"
	artist.Genres = []string{"Rock n Roll", "Blues"}
	require.NoError(t, artistDB.UpdateArtist(ctx, artist))

	got, err := artistDB.GetArtistByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oakland", got.City)
	assert.Equal(t, []string{"Rock n Roll", "Blues"}, got.Genres)

	missing := &models.Artist{ID: artist.ID + 10, Name: "Nobody", City: "X", State: "CA"}
	assert.ErrorIs(t, artistDB.UpdateArtist(ctx, missing), models.ErrNotFound)
}

func TestArtistExists(t *testing.T) {
	_, bunDB := setupTestDB(t)
	artist := dbtest.Artist(t, bunDB, models.Artist{})

	ok, err := db.ArtistExists(context.Background(), bunDB, artist.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.ArtistExists(context.Background(), bunDB, artist.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchArtists(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	gnp := dbtest.Artist(t, bunDB, models.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA"})
	matt := dbtest.Artist(t, bunDB, models.Artist{Name: "Matt Quevedo", City: "New York", State: "NY"})
	sax := dbtest.Artist(t, bunDB, models.Artist{Name: "The Wild Sax Band", City: "San Francisco", State: "CA"})
	venue := dbtest.Venue(t, bunDB, models.Venue{})
	dbtest.Show(t, bunDB, venue.ID, sax.ID, now.Add(time.Hour))
	dbtest.Show(t, bunDB, venue.ID, sax.ID, now.Add(-time.Hour))

	results, err := artistDB.SearchArtists(ctx, "A", now)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, gnp.ID, results[0].ID)
	assert.Equal(t, matt.ID, results[1].ID)
	assert.Equal(t, sax.ID, results[2].ID)
	assert.Equal(t, 1, results[2].NumUpcomingShows)

	results, err = artistDB.SearchArtists(ctx, "band", now)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Wild Sax Band", results[0].Name)

	results, err = artistDB.SearchArtists(ctx, "ny", now)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, matt.ID, results[0].ID)

	results, err = artistDB.SearchArtists(ctx, "zzz", now)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListArtists(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)

	first := dbtest.Artist(t, bunDB, models.Artist{Name: "B side"})
	second := dbtest.Artist(t, bunDB, models.Artist{Name: "A side"})

	artists, err := artistDB.ListArtists(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, first.ID, artists[0].ID)
	assert.Equal(t, second.ID, artists[1].ID)
}

func TestListRecentArtists(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)

	dbtest.Artist(t, bunDB, models.Artist{Name: "Old"})
	newest := dbtest.Artist(t, bunDB, models.Artist{Name: "New"})

	artists, err := artistDB.ListRecentArtists(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, newest.ID, artists[0].ID)
}

func TestShowsForArtist(t *testing.T) {
	artistDB, bunDB := setupTestDB(t)
	now := time.Now()

	artist := dbtest.Artist(t, bunDB, models.Artist{})
	hop := dbtest.Venue(t, bunDB, models.Venue{Name: "The Musical Hop", ImageLink: "https://example.com/hop.png"})
	park := dbtest.Venue(t, bunDB, models.Venue{Name: "Park Square"})
	dbtest.Show(t, bunDB, park.ID, artist.ID, now.Add(time.Hour))
	dbtest.Show(t, bunDB, hop.ID, artist.ID, now.Add(-time.Hour))

	shows, err := artistDB.ShowsForArtist(context.Background(), artist.ID)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	require.NotNil(t, shows[0].Venue)
	assert.Equal(t, "The Musical Hop", shows[0].Venue.Name)
	assert.Equal(t, "https://example.com/hop.png", shows[0].Venue.ImageLink)
	assert.Equal(t, "Park Square", shows[1].Venue.Name)
}
