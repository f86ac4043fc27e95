package artist_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	artists "fyyur/internal/artists/service"
	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/share"
	"fyyur/internal/web"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ArtistService *artists.ArtistService
	Render        *web.Renderer
	QR            *share.QRGenerator
	Logger        *logger.Logger
}

func NewHandler(svc *artists.ArtistService, rd *web.Renderer, qr *share.QRGenerator, log *logger.Logger) *Handler {
	return &Handler{ArtistService: svc, Render: rd, QR: qr, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Get("/create", h.NewArtistForm)
		r.Post("/create", h.CreateArtist)
		r.Get("/{artistId}", h.ShowArtist)
		r.Get("/{artistId}/edit", h.EditArtistForm)
		r.Post("/{artistId}/edit", h.UpdateArtist)
		r.Get("/{artistId}/qrcode.png", h.ArtistQRCode)
	})
}

func artistID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistId"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	list, err := h.ArtistService.ListArtists(r.Context())
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "pages/artists", web.Page{Title: "Artists", Data: list})
}

type searchResults struct {
	Count   int
	Results []models.ArtistSummary
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	var form forms.SearchForm
	if err := forms.Bind(r, &form); err != nil {
		h.Render.HTML(w, r, http.StatusBadRequest, "pages/search_artists", web.Page{Title: "Artist Search", Data: searchResults{}})
		return
	}

	results, err := h.ArtistService.SearchArtists(r.Context(), form.Term())
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.Render.HTML(w, r, http.StatusOK, "pages/search_artists", web.Page{
		Title:        "Artist Search",
		SearchTerm:   form.Term(),
		SearchAction: "/artists/search",
		Data:         searchResults{Count: len(results), Results: results},
	})
}

// ShowArtist renders the artist page with past and upcoming shows.
func (h *Handler) ShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	artist, err := h.ArtistService.GetArtist(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.Render.HTML(w, r, http.StatusOK, "pages/show_artist", web.Page{Title: artist.Name, Data: artist})
}

func (h *Handler) NewArtistForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "/artists/create", forms.ArtistForm{}, nil)
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var form forms.ArtistForm
	if err := forms.Bind(r, &form); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "/artists/create", form, forms.FieldErrors(err))
		return
	}

	artist := form.Artist()
	if _, err := h.ArtistService.CreateArtist(r.Context(), artist); err != nil {
		h.logError(err)
		h.Render.AddFlash(w, r, web.FlashError, fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name))
		h.Render.Redirect(w, r, "/artists")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	h.Render.Redirect(w, r, "/artists")
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	artist, err := h.ArtistService.FindArtist(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.renderForm(w, r, http.StatusOK, fmt.Sprintf("/artists/%d/edit", id), forms.ArtistFormFrom(artist), nil)
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	var form forms.ArtistForm
	if err := forms.Bind(r, &form); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("/artists/%d/edit", id), form, forms.FieldErrors(err))
		return
	}

	artist := form.Artist()
	artist.ID = id
	err := h.ArtistService.UpdateArtist(r.Context(), artist)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.logError(err)
		h.Render.AddFlash(w, r, web.FlashError, fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name))
		h.Render.Redirect(w, r, "/artists")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	h.Render.Redirect(w, r, fmt.Sprintf("/artists/%d", id))
}

func (h *Handler) ArtistQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	artist, err := h.ArtistService.FindArtist(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	if err := h.QR.ServePNG(w, r, fmt.Sprintf("/artists/%d", artist.ID)); err != nil {
		h.Render.ServerError(w, r, err)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, action string, form forms.ArtistForm, errs forms.Errors) {
	title, submit := "List a new artist", "Create Artist"
	if action != "/artists/create" {
		title, submit = "Edit artist "+form.Name, "Save"
	}
	h.Render.HTML(w, r, status, "forms/artist", web.Page{
		Title:  title,
		Action: action,
		Submit: submit,
		Form:   form,
		Errors: errs,
	})
}

func (h *Handler) logError(err error) {
	if h.Logger != nil {
		h.Logger.Error("ARTIST", err.Error())
	}
}
