package venue_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/share"
	venues "fyyur/internal/venues/service"
	"fyyur/internal/web"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	VenueService *venues.VenueService
	Render       *web.Renderer
	QR           *share.QRGenerator
	Logger       *logger.Logger
}

func NewHandler(svc *venues.VenueService, rd *web.Renderer, qr *share.QRGenerator, log *logger.Logger) *Handler {
	return &Handler{VenueService: svc, Render: rd, QR: qr, Logger: log}
}

// RegisterRoutes mounts every /venues route on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Get("/create", h.NewVenueForm)
		r.Post("/create", h.CreateVenue)
		r.Get("/{venueId}", h.ShowVenue)
		r.Delete("/{venueId}", h.DeleteVenue)
		r.Post("/{venueId}/delete", h.DeleteVenue)
		r.Get("/{venueId}/edit", h.EditVenueForm)
		r.Post("/{venueId}/edit", h.UpdateVenue)
		r.Get("/{venueId}/qrcode.png", h.VenueQRCode)
	})
}

func venueID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	return id, err == nil && id > 0
}

// ListVenues shows venues grouped by city and state.
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.VenueService.ListAreas(r.Context())
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "pages/venues", web.Page{Title: "Venues", Data: areas})
}

type searchResults struct {
	Count   int
	Results []models.VenueSummary
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	var form forms.SearchForm
	if err := forms.Bind(r, &form); err != nil {
		h.Render.HTML(w, r, http.StatusBadRequest, "pages/search_venues", web.Page{Title: "Venue Search", Data: searchResults{}})
		return
	}

	results, err := h.VenueService.SearchVenues(r.Context(), form.Term())
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.Render.HTML(w, r, http.StatusOK, "pages/search_venues", web.Page{
		Title:        "Venue Search",
		SearchTerm:   form.Term(),
		SearchAction: "/venues/search",
		Data:         searchResults{Count: len(results), Results: results},
	})
}

func (h *Handler) ShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	venue, err := h.VenueService.GetVenue(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.Render.HTML(w, r, http.StatusOK, "pages/show_venue", web.Page{Title: venue.Name, Data: venue})
}

func (h *Handler) NewVenueForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "/venues/create", forms.VenueForm{}, nil)
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var form forms.VenueForm
	if err := forms.Bind(r, &form); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "/venues/create", form, forms.FieldErrors(err))
		return
	}

	venue := form.Venue()
	if _, err := h.VenueService.CreateVenue(r.Context(), venue); err != nil {
		h.logError(err)
		h.Render.AddFlash(w, r, web.FlashError, fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name))
		h.Render.Redirect(w, r, "/venues")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	h.Render.Redirect(w, r, "/venues")
}

func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	venue, err := h.VenueService.FindVenue(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	h.renderForm(w, r, http.StatusOK, fmt.Sprintf("/venues/%d/edit", id), forms.VenueFormFrom(venue), nil)
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	var form forms.VenueForm
	if err := forms.Bind(r, &form); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("/venues/%d/edit", id), form, forms.FieldErrors(err))
		return
	}

	venue := form.Venue()
	venue.ID = id
	err := h.VenueService.UpdateVenue(r.Context(), venue)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.logError(err)
		h.Render.AddFlash(w, r, web.FlashError, fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name))
		h.Render.Redirect(w, r, "/venues")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	h.Render.Redirect(w, r, fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue removes the venue with its shows and returns to the home
// page. A missing venue is reported with a flash, never an error page.
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Render.AddFlash(w, r, web.FlashError, "An error occurred. Venue could not be deleted.")
		h.Render.Redirect(w, r, "/")
		return
	}

	name := fmt.Sprintf("#%d", id)
	if venue, err := h.VenueService.FindVenue(r.Context(), id); err == nil {
		name = venue.Name
	}

	if err := h.VenueService.DeleteVenue(r.Context(), id); err != nil {
		h.logError(err)
		h.Render.AddFlash(w, r, web.FlashError, fmt.Sprintf("An error occurred. Venue %s could not be deleted.", name))
		h.Render.Redirect(w, r, "/")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, fmt.Sprintf("Venue %s was successfully deleted.", name))
	h.Render.Redirect(w, r, "/")
}

// VenueQRCode serves a PNG QR code linking to the venue page.
func (h *Handler) VenueQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Render.NotFound(w, r)
		return
	}

	venue, err := h.VenueService.FindVenue(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Render.NotFound(w, r)
		return
	}
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}

	if err := h.QR.ServePNG(w, r, fmt.Sprintf("/venues/%d", venue.ID)); err != nil {
		h.Render.ServerError(w, r, err)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, action string, form forms.VenueForm, errs forms.Errors) {
	title, submit := "List a new venue", "Create Venue"
	if action != "/venues/create" {
		title, submit = "Edit venue "+form.Name, "Save"
	}
	h.Render.HTML(w, r, status, "forms/venue", web.Page{
		Title:  title,
		Action: action,
		Submit: submit,
		Form:   form,
		Errors: errs,
	})
}

func (h *Handler) logError(err error) {
	if h.Logger != nil {
		h.Logger.Error("VENUE", err.Error())
	}
}
