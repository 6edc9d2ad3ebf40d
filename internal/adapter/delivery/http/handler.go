package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type linkUseCase interface {
	CreateLink(ctx context.Context, userID, originalURL, shortCode string) (*entity.Link, error)
	GetLink(ctx context.Context, userID, shortCode string) (*entity.Link, error)
	ListLinks(ctx context.Context, userID string, limit, offset int) (*entity.LinkPage, error)
	ModifyLink(ctx context.Context, userID, shortCode, originalURL string) (*entity.Link, error)
	DeleteLink(ctx context.Context, userID, shortCode string) error
}

type linkHandler struct {
	useCase  linkUseCase
	validate *validator.Validate
}

func newLinkHandler(useCase linkUseCase, validate *validator.Validate) *linkHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("shortcode", validateShortCode)

	return &linkHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// decode reads and validates a JSON request body, writing the error response itself.
func (h *linkHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return false
	}

	return true
}

func (h *linkHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrLinkNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, linkNotFoundResponse)
	case errors.Is(err, entity.ErrShortCodeExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, shortCodeExistsResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

func (h *linkHandler) createLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest

	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	link, err := h.useCase.CreateLink(r.Context(), userID, req.OriginalURL, req.ShortCode)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) listLinks(w http.ResponseWriter, r *http.Request) {
	var (
		limit, offset int
		errs          []validationError
	)

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &limit}, {"offset", &offset}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validationError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}

	if len(errs) > 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Status:  statusError,
			Message: "validation error",
			Errors:  errs,
		})
		return
	}

	userID, _ := userIDFromContext(r.Context())

	page, err := h.useCase.ListLinks(r.Context(), userID, limit, offset)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkListResponse(page))
}

func (h *linkHandler) getLink(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	userID, _ := userIDFromContext(r.Context())

	link, err := h.useCase.GetLink(r.Context(), userID, shortCode)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) modifyLink(w http.ResponseWriter, r *http.Request) {
	var req modifyLinkRequest

	if !h.decode(w, r, &req) {
		return
	}

	shortCode := chi.URLParam(r, "shortCode")
	userID, _ := userIDFromContext(r.Context())

	link, err := h.useCase.ModifyLink(r.Context(), userID, shortCode, req.OriginalURL)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) deleteLink(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	userID, _ := userIDFromContext(r.Context())

	if err := h.useCase.DeleteLink(r.Context(), userID, shortCode); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
