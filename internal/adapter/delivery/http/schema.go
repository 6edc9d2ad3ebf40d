package http

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

const statusError = "error"

var shortCodeRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,10}$`)

// validateShortCode backs the "shortcode" validation tag.
func validateShortCode(fl validator.FieldLevel) bool {
	return shortCodeRegexp.MatchString(fl.Field().String())
}

// createLinkRequest represents the structure for a request to create a link.
type createLinkRequest struct {
	OriginalURL string `json:"original_url" validate:"required,url,max=2048"`
	ShortCode   string `json:"short_code" validate:"required,shortcode"`
}

// modifyLinkRequest represents the structure for a request to change a link's target.
type modifyLinkRequest struct {
	OriginalURL string `json:"original_url" validate:"required,url,max=2048"`
}

// linkResponse represents the structure for a response containing link information.
type linkResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toLinkResponse(link *entity.Link) linkResponse {
	return linkResponse{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}

type linkListResponse struct {
	Links  []linkResponse `json:"links"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func toLinkListResponse(page *entity.LinkPage) linkListResponse {
	resp := linkListResponse{
		Links:  make([]linkResponse, 0, len(page.Links)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	for _, link := range page.Links {
		resp.Links = append(resp.Links, toLinkResponse(link))
	}

	return resp
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	linkNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "link not found",
	}

	shortCodeExistsResponse = errorResponse{
		Status:  statusError,
		Message: "short code already exists",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Message: "unauthorized",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "max":
		return "value is too long"
	case "shortcode":
		return "must be 1 to 10 letters, digits, '-' or '_'"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
