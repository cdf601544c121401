package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/metrics"
	"github.com/Skotchmaster/flogin/internal/service"
	"github.com/Skotchmaster/flogin/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindBody(c, &req); err != nil {
		l.Warn("login_failed", "status", http.StatusBadRequest, "reason", "malformed body", "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		l.Error("login_failed", "status", http.StatusInternalServerError, "reason", "user lookup", "error", err)
		return err
	}

	status := loginStatus(res)
	if res.Success {
		metrics.LoginAttempts.WithLabelValues("success").Inc()
		l.Info("login_success", "username", res.Username)
	} else {
		metrics.LoginAttempts.WithLabelValues(res.Failure.String()).Inc()
		l.Warn("login_failed", "status", status, "reason", res.Failure.String())
	}

	return c.JSON(status, transport.LoginResponse{
		Success:  res.Success,
		Message:  res.Message,
		Token:    res.Token,
		Username: res.Username,
	})
}

func loginStatus(res *service.LoginResult) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.Failure.BadCredentials():
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
