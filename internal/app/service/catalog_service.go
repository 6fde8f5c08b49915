package service

import (
	"context"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/pkg/logger"
)

// ProductLister is the remote catalog.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type CatalogService interface {
	Load(ctx context.Context) *model.Catalog
}

type catalogService struct {
	lister ProductLister
}

func NewCatalogService(lister ProductLister) CatalogService {
	return &catalogService{lister: lister}
}

// Load fetches the catalog once for the current request. A failed fetch is
// logged and yields an empty catalog so the page still renders.
func (s *catalogService) Load(ctx context.Context) *model.Catalog {
	products, err := s.lister.ListProducts(ctx)
	if err != nil {
		logger.Error("Error loading products", err)
		return model.NewCatalog(nil)
	}

	logger.Debug("Catalog loaded", map[string]interface{}{
		"count": len(products),
	})
	return model.NewCatalog(products)
}
