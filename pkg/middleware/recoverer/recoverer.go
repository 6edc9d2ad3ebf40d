// Package recoverer turns handler panics into a logged JSON 500 response.
package recoverer

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// New returns a middleware that recovers from panics, logs them with the
// request id and stack, and responds with body as JSON.
// http.ErrAbortHandler is re-panicked so the server can abort the response.
func New(logger *slog.Logger, body any) func(http.Handler) http.Handler {
	const op = "middleware.recoverer"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error(
					"panic occurred while handling request",
					slog.Group(op,
						slog.Any("panic", rec),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						slog.String("stack", string(debug.Stack())),
					),
				)

				if r.Header.Get("Connection") != "Upgrade" {
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, body)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
