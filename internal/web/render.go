package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"

	"github.com/gin-gonic/gin/render"
)

//go:embed all:templates
var templateFS embed.FS

const (
	// DatetimeMedium renders like "Tue 05, 21, 2019 9:30PM".
	DatetimeMedium = "Mon 01, 02, 2006 3:04PM"
	// DatetimeFull renders like "Tuesday May, 21, 2019 at 9:30PM".
	DatetimeFull = "Monday January, 2, 2006 at 3:04PM"

	htmlContentType = "text/html; charset=utf-8"
)

// FormatDatetime renders t in the "medium" or "full" style; any other
// format string is used as a Go layout.
func FormatDatetime(format string, t time.Time) string {
	switch format {
	case "", "medium":
		format = DatetimeMedium
	case "full":
		format = DatetimeFull
	}
	return t.Format(format)
}

var funcs = template.FuncMap{
	"datetime": FormatDatetime,
	"join": func(sep string, list []string) string {
		return strings.Join(list, sep)
	},
	"has": func(list []string, v string) bool {
		for _, item := range list {
			if item == v {
				return true
			}
		}
		return false
	},
	"checkbox": forms.ParseCheckbox,
	"listing": func(base string, shows []models.ShowListing) map[string]any {
		return map[string]any{"Base": base, "Shows": shows}
	},
}

// Page is the data every template receives.
type Page struct {
	Title   string
	Flashes []Flash

	// form pages
	Action string
	Submit string
	Form   any
	Errors forms.Errors
	States []string
	Genres []string

	SearchTerm   string
	SearchAction string

	Data any
}

// Renderer executes the embedded page templates and owns the flash store.
type Renderer struct {
	pages  map[string]*template.Template
	Flash  Flasher
	Logger *logger.Logger
}

// NewRenderer parses every page under templates/ together with the layout
// and the shared partials. Pages are addressed as "pages/venues",
// "forms/venue", "errors/404" and so on.
func NewRenderer(flash Flasher, log *logger.Logger) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}, Flash: flash, Logger: log}

	shared := []string{"templates/layouts/main.html", "templates/pages/_shows.html", "templates/forms/_fields.html"}
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") || strings.HasPrefix(path.Base(p), "_") || strings.HasPrefix(p, "templates/layouts/") {
			return nil
		}

		files := append(append([]string{}, shared...), p)
		tmpl, err := template.New(path.Base(p)).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// HTML renders page with status. Pending flashes are consumed and shown.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logError(fmt.Sprintf("Unknown template %q", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if r.Flash != nil {
		flashes, err := r.Flash.Pop(w, req)
		if err != nil {
			r.logError(fmt.Sprintf("Failed to read flashes: %v", err))
		}
		page.Flashes = append(page.Flashes, flashes...)
	}
	if page.States == nil {
		page.States = forms.States
	}
	if page.Genres == nil {
		page.Genres = forms.Genres
	}
	if page.SearchAction == "" {
		page.SearchAction = "/venues/search"
		if strings.HasPrefix(req.URL.Path, "/artists") {
			page.SearchAction = "/artists/search"
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		r.logError(fmt.Sprintf("Failed to render %s: %v", name, err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	out := render.Data{ContentType: htmlContentType, Data: buf.Bytes()}
	out.WriteContentType(w)
	w.WriteHeader(status)
	if err := out.Render(w); err != nil {
		r.logError(fmt.Sprintf("Failed to write %s: %v", name, err))
	}
}

// AddFlash queues a message for the next rendered page.
func (r *Renderer) AddFlash(w http.ResponseWriter, req *http.Request, category, message string) {
	if r.Flash == nil {
		return
	}
	if err := r.Flash.Add(w, req, Flash{Category: category, Message: message}); err != nil {
		r.logError(fmt.Sprintf("Failed to store flash: %v", err))
	}
}

// Redirect sends a 303 so the browser follows up with a GET.
func (r *Renderer) Redirect(w http.ResponseWriter, req *http.Request, url string) {
	http.Redirect(w, req, url, http.StatusSeeOther)
}

func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	r.HTML(w, req, http.StatusNotFound, "errors/404", Page{Title: "Not Found"})
}

func (r *Renderer) ServerError(w http.ResponseWriter, req *http.Request, err error) {
	r.logError(fmt.Sprintf("%s %s: %v", req.Method, req.URL.Path, err))
	r.HTML(w, req, http.StatusInternalServerError, "errors/500", Page{Title: "Server Error"})
}

// JSON writes v with gin's JSON renderer.
func (r *Renderer) JSON(w http.ResponseWriter, status int, v any) {
	out := render.JSON{Data: v}
	out.WriteContentType(w)
	w.WriteHeader(status)
	if err := out.Render(w); err != nil {
		r.logError(fmt.Sprintf("Failed to write JSON: %v", err))
	}
}

func (r *Renderer) logError(msg string) {
	if r.Logger != nil {
		r.Logger.Error("RENDER", msg)
	}
}
