package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/items/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/broken", func(c echo.Context) error { return echo.ErrBadRequest })
	e.GET("/metrics", Handler())

	okCounter := RequestTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")
	badCounter := RequestTotal.WithLabelValues(http.MethodGet, "/broken", "400")
	okBefore := promtestutil.ToFloat64(okCounter)
	badBefore := promtestutil.ToFloat64(badCounter)

	for _, path := range []string{"/items/1", "/items/2", "/broken"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, promtestutil.ToFloat64(okCounter))
	assert.Equal(t, badBefore+1, promtestutil.ToFloat64(badCounter))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "flogin_http_requests_total"))
}
