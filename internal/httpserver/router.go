package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/flogin/internal/metrics"
	loggingmw "github.com/Skotchmaster/flogin/internal/middleware/logging"
	"github.com/Skotchmaster/flogin/internal/middleware/security"
)

type Deps struct {
	Logger         *slog.Logger
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	HealthHandler  *HealthHTTP
	AllowedOrigin  string
	// LoginRateLimit is requests per second per client IP on the login
	// route; zero disables the limiter.
	LoginRateLimit float64
}

// New builds the echo instance with the middleware stack and all routes.
func New(d *Deps) *echo.Echo {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	// inner Recover turns handler panics into a 500 the logger and metrics see
	e.Use(echomw.Recover())
	e.Use(security.Headers())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{d.AllowedOrigin},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		ExposeHeaders: []string{"*"},
	}))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	health := d.HealthHandler
	if health == nil {
		health = &HealthHTTP{}
	}
	e.GET("/health/live", health.Live)
	e.GET("/health/ready", health.Ready)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")

	var loginMW []echo.MiddlewareFunc
	if d.LoginRateLimit > 0 {
		store := echomw.NewRateLimiterMemoryStore(rate.Limit(d.LoginRateLimit))
		loginMW = append(loginMW, echomw.RateLimiter(store))
	}
	api.POST("/auth/login", d.AuthHandler.Login, loginMW...)

	api.GET("/categories", GetCategories)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct)
}
