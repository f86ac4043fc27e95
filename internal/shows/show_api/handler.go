package show_api

import (
	"errors"
	"net/http"

	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	shows "fyyur/internal/shows/service"
	"fyyur/internal/web"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ShowService *shows.ShowService
	Render      *web.Renderer
	Logger      *logger.Logger
}

func NewHandler(svc *shows.ShowService, rd *web.Renderer, log *logger.Logger) *Handler {
	return &Handler{ShowService: svc, Render: rd, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Get("/create", h.NewShowForm)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ShowService.ListShows(r.Context())
	if err != nil {
		h.Render.ServerError(w, r, err)
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "pages/shows", web.Page{Title: "Shows", Data: rows})
}

func (h *Handler) NewShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, forms.ShowForm{}, nil)
}

// CreateShow books a show. Ids that do not name an existing venue and
// artist are reported with a flash, not a form error.
func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var form forms.ShowForm
	if err := forms.Bind(r, &form); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form, forms.FieldErrors(err))
		return
	}

	show, err := form.Show()
	if err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form, forms.FieldErrors(err))
		return
	}

	if _, err := h.ShowService.CreateShow(r.Context(), show); err != nil {
		h.logError(err)
		msg := "An error occurred. Show could not be listed."
		if errors.Is(err, models.ErrInvalidReference) {
			msg = "An error occurred. Show could not be listed: unknown venue or artist."
		}
		h.Render.AddFlash(w, r, web.FlashError, msg)
		h.Render.Redirect(w, r, "/shows")
		return
	}

	h.Render.AddFlash(w, r, web.FlashSuccess, "Show was successfully listed!")
	h.Render.Redirect(w, r, "/shows")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, form forms.ShowForm, errs forms.Errors) {
	h.Render.HTML(w, r, status, "forms/show", web.Page{
		Title:  "List a new show",
		Action: "/shows/create",
		Submit: "Create Show",
		Form:   form,
		Errors: errs,
	})
}

func (h *Handler) logError(err error) {
	if h.Logger != nil {
		h.Logger.Error("SHOW", err.Error())
	}
}
