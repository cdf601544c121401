package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/transport"
)

const (
	msgValidationFailed = "Validation failed"
	msgMalformed        = "Malformed JSON request"
	msgUnexpected       = "An unexpected error occurred"
)

// ErrorHandler renders every error escaping a handler. Domain not-found is
// an empty 404; unexpected faults are logged and answered generically.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		verr *transport.ValidationError
		aerr *domain.ArgumentError
		herr *echo.HTTPError
	)

	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, msgValidationFailed, verr.Errors)
	case errors.Is(err, transport.ErrMalformed):
		writeError(c, http.StatusBadRequest, msgMalformed, nil)
	case errors.Is(err, domain.ErrNotFound):
		writeEmpty(c, http.StatusNotFound)
	case errors.As(err, &aerr):
		writeError(c, http.StatusBadRequest, aerr.Message, nil)
	case errors.As(err, &herr):
		if herr.Internal != nil {
			logging.FromContext(c.Request().Context()).Debug("http_error", "status", herr.Code, "error", herr.Internal)
		}
		writeError(c, herr.Code, fmt.Sprint(herr.Message), nil)
	default:
		logging.FromContext(c.Request().Context()).Error("unexpected_error", "error", err)
		writeError(c, http.StatusInternalServerError, msgUnexpected, nil)
	}
}

func writeError(c echo.Context, status int, msg string, details []string) {
	if c.Request().Method == http.MethodHead {
		writeEmpty(c, status)
		return
	}

	body := transport.ApiError{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      c.Request().URL.Path,
		Timestamp: time.Now().UTC(),
		Errors:    details,
	}
	if err := c.JSON(status, body); err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", err)
	}
}

func writeEmpty(c echo.Context, status int) {
	if err := c.NoContent(status); err != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", err)
	}
}

// bindBody decodes the JSON request body into dst. A missing body or any
// decode failure is reported as transport.ErrMalformed.
func bindBody(c echo.Context, dst any) error {
	if c.Request().ContentLength == 0 {
		return fmt.Errorf("%w: empty body", transport.ErrMalformed)
	}
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrMalformed, err)
	}
	return nil
}
