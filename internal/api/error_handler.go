package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/api/handler"
	"github.com/akti/portal-api/internal/core/domain"
)

// errorResponse is the canonical error envelope: the portal's clients
// key off success=false plus an optional offending field.
type errorResponse struct {
	Success bool   `json:"success"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Carries the offending field for validation and conflict errors.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, field, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Field: field, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Validation failures carry their offending field.
	var fe *handler.FieldedError
	if errors.As(err, &fe) {
		return http.StatusBadRequest, fe.Field, fe.Message
	}

	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, "", fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic codes.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "username", "Username already exists."
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "email", "Email already exists."
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "", "Invalid identifier."
	case errors.Is(err, domain.ErrCSRNotFound):
		return http.StatusNotFound, "", "CSR not found."
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound, "", "Course not found."
	case errors.Is(err, domain.ErrStudentNotFound):
		return http.StatusNotFound, "", "Student not found."
	case errors.Is(err, domain.ErrCoWorkerNotFound):
		return http.StatusNotFound, "", "Co-worker not found."
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusUnauthorized, "username", "User not found."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "password", "Invalid password."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "", "Server error, please try again."
}
