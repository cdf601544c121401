package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/flogin/internal/domain"
)

func GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Categories())
}
