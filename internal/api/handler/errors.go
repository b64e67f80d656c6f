package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// DomainStatus maps a domain sentinel to its HTTP status and public message.
// ok is false for errors that are not part of the domain vocabulary.
func DomainStatus(err error) (code int, msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered", true
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found", true
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, "application not found", true
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, "conversation not found", true
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found", true
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error(), true
	}
	return 0, "", false
}

// respondError renders known domain errors and hands anything else back to
// Echo so the central error handler logs it and answers 500.
func respondError(c echo.Context, err error) error {
	code, msg, ok := DomainStatus(err)
	if !ok {
		return err
	}
	return c.JSON(code, errorResponse{Error: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
