package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/link-shortener/internal/ui"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const dashboardPageSize = 50

// Only script sources are locked down: the identity provider's widgets pull
// styles, images and frames from its own hosts.
const cspFormat = "script-src 'nonce-%s' 'strict-dynamic' https: 'unsafe-inline'; object-src 'none'; base-uri 'self'"

type pageRenderer interface {
	Render(w io.Writer, page string, view ui.View) error
}

type pageHandler struct {
	renderer pageRenderer
	useCase  linkUseCase
}

func newPageHandler(renderer pageRenderer, useCase linkUseCase) *pageHandler {
	return &pageHandler{
		renderer: renderer,
		useCase:  useCase,
	}
}

func (h *pageHandler) home(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	h.render(w, r, ui.PageHome, ui.View{
		Data: ui.HomeData{Features: ui.Features},
	})
}

func (h *pageHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	page, err := h.useCase.ListLinks(r.Context(), userID, dashboardPageSize, 0)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := ui.DashboardData{Links: make([]ui.DashboardLink, 0, len(page.Links))}
	for _, link := range page.Links {
		data.Links = append(data.Links, ui.DashboardLink{
			ShortCode:   link.ShortCode,
			OriginalURL: link.OriginalURL,
			CreatedAt:   link.CreatedAt,
		})
	}

	h.render(w, r, ui.PageDashboard, ui.View{Data: data})
}

func (h *pageHandler) render(w http.ResponseWriter, r *http.Request, page string, view ui.View) {
	nonce, err := gonanoid.New()
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_, view.SignedIn = userIDFromContext(r.Context())
	view.Nonce = nonce

	w.Header().Set("Content-Security-Policy", fmt.Sprintf(cspFormat, nonce))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.renderer.Render(w, page, view); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		w.Header().Del("Content-Security-Policy")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
