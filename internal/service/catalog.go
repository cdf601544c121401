package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/transport"
	"github.com/Skotchmaster/flogin/internal/util"
)

var ErrPaginationRequired = domain.NewArgumentError("pagination parameters are required")

type ProductStore interface {
	CreateProduct(ctx context.Context, prod *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	SaveProduct(ctx context.Context, prod *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsPage(ctx context.Context, offset, limit int) (int64, []models.Product, error)
}

// ProductNotifier is told about committed product changes. Failures are
// logged and never undo the change.
type ProductNotifier interface {
	ProductChanged(ctx context.Context, ev models.ProductEvent) error
}

type PageParams struct {
	Page int
	Size int
}

type PageResult struct {
	Page  int
	Size  int
	Total int64
	Items []models.Product
}

const notifyTimeout = 5 * time.Second

type CatalogService struct {
	Repo      ProductStore
	Validator *transport.Validator
	Notifiers []ProductNotifier
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if err := s.validator().Validate(req); err != nil {
		return nil, err
	}

	var prod models.Product
	if err := apply(&prod, req); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.notify(ctx, models.ProductCreated, &prod)
	return &prod, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

// UpdateProduct replaces every mutable field. Nothing is written unless the
// whole request is valid.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	if err := s.validator().Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if err := apply(&updated, req); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveProduct(ctx, &updated); err != nil {
		return nil, err
	}

	s.notify(ctx, models.ProductUpdated, &updated)
	return &updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, models.ProductDeleted, &models.Product{ID: id})
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// ListPage requires explicit paging; a nil params is a caller bug reported
// as ErrPaginationRequired.
func (s *CatalogService) ListPage(ctx context.Context, params *PageParams) (*PageResult, error) {
	if params == nil {
		return nil, ErrPaginationRequired
	}

	page, offset, limit := util.Calculate(params.Page, params.Size)
	total, items, err := s.Repo.ListProductsPage(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &PageResult{Page: page, Size: limit, Total: total, Items: items}, nil
}

// apply copies a validated request onto prod. prod is untouched on error.
func apply(prod *models.Product, req transport.ProductRequest) error {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return err
	}

	prod.Name = req.Name
	prod.Price = *req.Price
	prod.Quantity = *req.Quantity
	prod.Description = req.Description
	prod.Category = category
	return nil
}

func (s *CatalogService) notify(ctx context.Context, kind string, prod *models.Product) {
	if len(s.Notifiers) == 0 {
		return
	}

	l := logging.FromContext(ctx).With("svc", "catalog.notify")
	ev := models.ProductEvent{Type: kind, ProductID: prod.ID, Name: prod.Name}
	if kind != models.ProductDeleted {
		ev.Product = prod
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	for _, n := range s.Notifiers {
		if err := n.ProductChanged(ctx, ev); err != nil {
			l.Error("product_notify_failed", "type", kind, "product_id", prod.ID, "error", err)
		}
	}
}

func (s *CatalogService) validator() *transport.Validator {
	if s.Validator == nil {
		return defaultValidator
	}
	return s.Validator
}
