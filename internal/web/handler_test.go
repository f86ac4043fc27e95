package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fyyur/internal/models"
	"fyyur/internal/web"

	"github.com/stretchr/testify/assert"
)

type stubRecent struct {
	venues  []models.VenueSummary
	artists []models.ArtistSummary
	err     error
	limit   int
}

func (s *stubRecent) RecentVenues(_ context.Context, limit int) ([]models.VenueSummary, error) {
	s.limit = limit
	return s.venues, s.err
}

func (s *stubRecent) RecentArtists(_ context.Context, limit int) ([]models.ArtistSummary, error) {
	return s.artists, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHome(t *testing.T) {
	rd, _ := newRenderer(t)
	recent := &stubRecent{
		venues:  []models.VenueSummary{{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"}},
		artists: []models.ArtistSummary{{ID: 4, Name: "Guns N Petals"}},
	}
	h := &web.Handler{Render: rd, Venues: recent, Artists: recent}

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
	assert.Contains(t, rec.Body.String(), "Guns N Petals")
	assert.Equal(t, web.RecentLimit, recent.limit)
}

func TestHomeStoreFailure(t *testing.T) {
	rd, _ := newRenderer(t)
	recent := &stubRecent{err: errors.New("db down")}
	h := &web.Handler{Render: rd, Venues: recent, Artists: recent}

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	rd, _ := newRenderer(t)

	rec := httptest.NewRecorder()
	(&web.Handler{Render: rd, DB: stubPinger{}}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	(&web.Handler{Render: rd, DB: stubPinger{err: errors.New("refused")}}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "refused")
}

func TestNotFound(t *testing.T) {
	rd, _ := newRenderer(t)

	rec := httptest.NewRecorder()
	(&web.Handler{Render: rd}).NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "find that page")
}

func TestMethodNotAllowed(t *testing.T) {
	rd, _ := newRenderer(t)

	rec := httptest.NewRecorder()
	(&web.Handler{Render: rd}).MethodNotAllowed(rec, httptest.NewRequest(http.MethodPut, "/venues", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Method Not Allowed")
	assert.Contains(t, rec.Body.String(), "not allowed on this page")
	assert.NotContains(t, rec.Body.String(), "find that page")
}
