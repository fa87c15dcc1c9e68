package catalog

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/sneakhaus/storefront/internal/domain"
)

// ProductLister is the slice of the backend client the catalog needs.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Service fetches the product list from the backend on every request.
// Nothing is cached; singleflight only collapses concurrent identical
// fetches so a burst of page loads becomes one upstream call.
type Service struct {
	backend ProductLister
	sfg     singleflight.Group
}

func NewService(backend ProductLister) *Service {
	return &Service{backend: backend}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		return s.backend.ListProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
