package web

import (
	"context"
	"net/http"

	"fyyur/internal/models"
)

// RecentLimit is how many venues and artists the home page shows.
const RecentLimit = 10

type RecentVenues interface {
	RecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error)
}

type RecentArtists interface {
	RecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the pages that belong to no single listing type.
type Handler struct {
	Render  *Renderer
	Venues  RecentVenues
	Artists RecentArtists
	DB      Pinger
}

type homeData struct {
	Venues  []models.VenueSummary
	Artists []models.ArtistSummary
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Venues.RecentVenues(r.Context(), RecentLimit)
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}
	artists, err := h.Artists.RecentArtists(r.Context(), RecentLimit)
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.Render.HTML(w, r, http.StatusOK, "pages/home", Page{
		Title: "Home",
		Data:  homeData{Venues: venues, Artists: artists},
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render.NotFound(w, r)
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Render.HTML(w, r, http.StatusMethodNotAllowed, "errors/405", Page{Title: "Method Not Allowed"})
}

// Healthz reports whether the database answers.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			h.Render.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	h.Render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
