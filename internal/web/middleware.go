package web

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"fyyur/internal/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs every request with its status and duration.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				log.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), time.Since(start).String())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Recoverer turns a panicking handler into the 500 page.
func (rd *Renderer) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			if rd.Logger != nil {
				rd.Logger.Error("PANIC", fmt.Sprintf("%v\n%s", rec, debug.Stack()))
			}
			rd.HTML(w, r, http.StatusInternalServerError, "errors/500", Page{Title: "Server Error"})
		}()

		next.ServeHTTP(w, r)
	})
}
