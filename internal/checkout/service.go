package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sneakhaus/storefront/internal/backend"
	"github.com/sneakhaus/storefront/internal/cart"
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrNoPaymentLink = errors.New("backend returned no payment link")
)

// ValidationError carries the field-keyed messages from a failed form check.
// No backend request is issued when validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form invalid: %d field(s)", len(e.Fields))
}

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	Get(ctx context.Context, sessionID string) cart.Snapshot
	Clear(ctx context.Context, sessionID string) cart.Mutation
}

// OrderCreator submits a single order to the commerce backend.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.OrderResponse, error)
}

type Service struct {
	carts  CartAccess
	orders OrderCreator
	now    func() time.Time
}

func NewService(carts CartAccess, orders OrderCreator) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		now:    time.Now,
	}
}

// Submit runs the whole checkout: validate the form, then create one order
// per line item, strictly in sequence. The first response's payment link is
// the hosted payment redirect; the backend contract relies on submission
// order, so the loop must not be made concurrent.
//
// On full success the cart is cleared and the link returned. On any failure
// the loop aborts and the cart is left intact so the user can retry; orders
// already submitted are not rolled back.
func (s *Service) Submit(ctx context.Context, sessionID string, form Form) (string, error) {
	snap := s.carts.Get(ctx, sessionID)
	if len(snap.Items) == 0 {
		return "", ErrEmptyCart
	}

	if fields := form.Validate(s.now()); len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}

	var paymentLink string
	for _, item := range snap.Items {
		resp, err := s.orders.CreateOrder(ctx, backend.OrderRequest{
			FullName:   form.FullName,
			Email:      form.Email,
			Phone:      form.Phone,
			Address:    form.Address,
			City:       form.City,
			State:      form.State,
			Zip:        form.Zip,
			CardNumber: form.CardNumber,
			Expiry:     form.Expiry,
			CVV:        form.CVV,
			ProductID:  item.ProductID,
			Variant:    item.Variant,
			Quantity:   item.Quantity,
		})
		if err != nil {
			log.Printf("order submission failed for session %s, product %s: %v", sessionID, item.ProductID, err)
			return "", fmt.Errorf("order submission failed: %w", err)
		}
		if paymentLink == "" {
			paymentLink = resp.PaymentLink
		}
	}

	if paymentLink == "" {
		return "", ErrNoPaymentLink
	}

	s.carts.Clear(ctx, sessionID)
	return paymentLink, nil
}
