package web_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fyyur/internal/logger"
	"fyyur/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriterLogger(&buf)

	r := chi.NewRouter()
	r.Use(web.RequestLogger(log))
	r.Get("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/quiet", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quiet", nil))

	assert.Contains(t, buf.String(), "GET /teapot - 418")
	assert.Contains(t, buf.String(), "GET /quiet - 200")
}

func TestRecovererRendersServerError(t *testing.T) {
	rd, logs := newRenderer(t)

	r := chi.NewRouter()
	r.Use(rd.Recoverer)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("kaboom"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.Contains(t, logs.String(), "kaboom")
}
