package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mutualfund-backend/internal/adapter/middleware"
	"mutualfund-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body and path params into req and runs the struct tags.
// On failure the 400/422 response is already written and ok is false.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: apperr.CodeValidation})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    apperr.CodeValidation,
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func caller(c echo.Context) string { return middleware.MemberID(c) }

// statusOf maps a domain error kind to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidDuration),
		errors.Is(err, apperr.ErrOverCommit), errors.Is(err, apperr.ErrIneligibleGuarantor),
		errors.Is(err, apperr.ErrGuarantorConsensusRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrNotAuthorized), errors.Is(err, apperr.ErrInsufficientAuthority):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConcurrentModification), errors.Is(err, apperr.ErrAlreadyResponded),
		errors.Is(err, apperr.ErrAlreadyAtTop), errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders err as ErrorResponse. Unknown errors are logged and hidden.
func writeError(c echo.Context, log *slog.Logger, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		log.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, ErrorResponse{Error: "internal error", Code: apperr.CodeInternal})
	}
	var ae *apperr.Error
	msg := err.Error()
	if errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}
	return c.JSON(code, ErrorResponse{Error: msg, Code: apperr.CodeOf(err)})
}
