package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/service"
	"github.com/Skotchmaster/flogin/internal/transport"
	"github.com/Skotchmaster/flogin/internal/util"
)

var errInvalidID = domain.NewArgumentError("invalid product id")

// ProductSearcher is the full-text product index used by the search route.
type ProductSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogHTTP struct {
	Svc *service.CatalogService

	// Search is optional; the search route answers 503 without it.
	Search ProductSearcher
}

// parseID rejects non-numeric ids. Numeric ids that can never exist are
// reported as not found, like any other missing id.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	if id <= 0 {
		return 0, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return uint(id), nil
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "reason", "bad id", "id", c.Param("id"), "error", err)
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_failed", "id", id, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// GetProducts returns every product as a bare array, or one page wrapped
// with paging meta when page or size is given.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	pageParam, sizeParam := c.QueryParam("page"), c.QueryParam("size")
	if pageParam == "" && sizeParam == "" {
		items, err := h.Svc.ListProducts(ctx)
		if err != nil {
			l.Error("get_products_failed", "error", err)
			return err
		}
		return c.JSON(http.StatusOK, items)
	}

	res, err := h.Svc.ListPage(ctx, &service.PageParams{
		Page: util.ParseIntDefault(pageParam, 1),
		Size: util.ParseIntDefault(sizeParam, util.DefaultPageSize),
	})
	if err != nil {
		l.Error("get_products_failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, transport.Page[models.Product]{
		Data: res.Items,
		Meta: transport.NewPageMeta(res.Page, res.Size, res.Total),
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return domain.NewArgumentError("query parameter q is required")
	}

	page, offset, limit := util.Calculate(
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize),
	)

	total, items, err := h.Search.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_failed", "q", q, "error", err)
		return err
	}

	l.Info("search_success", "q", q, "total", total)
	return c.JSON(http.StatusOK, transport.Page[models.Product]{
		Data: items,
		Meta: transport.NewPageMeta(page, limit, total),
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := bindBody(c, &req); err != nil {
		l.Warn("create_product_failed", "reason", "malformed body", "error", err)
		return err
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_failed", "error", err)
		return err
	}

	l.Info("create_product_success", "id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_product_failed", "reason", "bad id", "id", c.Param("id"), "error", err)
		return err
	}

	var req transport.ProductRequest
	if err := bindBody(c, &req); err != nil {
		l.Warn("update_product_failed", "reason", "malformed body", "error", err)
		return err
	}

	product, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		l.Warn("update_product_failed", "id", id, "error", err)
		return err
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_failed", "reason", "bad id", "id", c.Param("id"), "error", err)
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "id", id, "error", err)
		return err
	}

	l.Info("delete_product_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
