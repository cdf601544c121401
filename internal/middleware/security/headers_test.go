package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHeaders(t *testing.T) {
	e := echo.New()
	e.Use(Headers())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return echo.ErrBadRequest })

	for _, path := range []string{"/", "/fail", "/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		h := rec.Header()
		assert.Equal(t, "nosniff", h.Get(echo.HeaderXContentTypeOptions), path)
		assert.Equal(t, "DENY", h.Get(echo.HeaderXFrameOptions), path)
		assert.Equal(t, ContentSecurityPolicy, h.Get(echo.HeaderContentSecurityPolicy), path)
		assert.Equal(t, StrictTransportSecurity, h.Get(echo.HeaderStrictTransportSecurity), path)
	}
}
