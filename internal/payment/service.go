package payment

import (
	"context"
	"fmt"

	"github.com/sneakhaus/storefront/internal/backend"
)

// OrderAPI is the slice of the backend client the confirmation view needs.
type OrderAPI interface {
	GetOrder(ctx context.Context, orderID string) (*backend.OrderStatus, error)
	SavePayment(ctx context.Context, rec backend.PaymentRecord) error
}

// Service backs the post-payment thank-you view: optionally record the
// gateway callback, then fetch the order's final status.
type Service struct {
	backend OrderAPI
}

func NewService(api OrderAPI) *Service {
	return &Service{backend: api}
}

// Confirm records the payment callback when one is present and returns the
// order status. A duplicate record (409 at the backend) is success; any
// order fetch failure surfaces as order-not-found to the caller.
func (s *Service) Confirm(ctx context.Context, orderID string, rec *backend.PaymentRecord) (*backend.OrderStatus, error) {
	if rec != nil {
		if err := s.backend.SavePayment(ctx, *rec); err != nil {
			return nil, fmt.Errorf("save payment: %w", err)
		}
	}

	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Status fetches the order descriptor without recording anything.
func (s *Service) Status(ctx context.Context, orderID string) (*backend.OrderStatus, error) {
	return s.backend.GetOrder(ctx, orderID)
}
