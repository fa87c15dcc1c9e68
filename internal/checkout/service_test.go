package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakhaus/storefront/internal/backend"
	"github.com/sneakhaus/storefront/internal/cart"
	"github.com/sneakhaus/storefront/internal/domain"
)

type mockCarts struct {
	snap    cart.Snapshot
	cleared bool
}

func (m *mockCarts) Get(context.Context, string) cart.Snapshot {
	return m.snap
}

func (m *mockCarts) Clear(context.Context, string) cart.Mutation {
	m.cleared = true
	m.snap = cart.Snapshot{}
	return cart.Mutation{Outcome: domain.OutcomeCleared}
}

type mockOrders struct {
	requests []backend.OrderRequest
	links    []string
	failAt   int // 1-based index of the request that fails; 0 = never
}

func (m *mockOrders) CreateOrder(_ context.Context, req backend.OrderRequest) (*backend.OrderResponse, error) {
	m.requests = append(m.requests, req)
	if m.failAt > 0 && len(m.requests) == m.failAt {
		return nil, backend.ErrOrderRejected
	}
	link := ""
	if len(m.requests) <= len(m.links) {
		link = m.links[len(m.requests)-1]
	}
	return &backend.OrderResponse{OrderID: req.ProductID, PaymentLink: link}, nil
}

func twoItemCart() cart.Snapshot {
	return cart.Snapshot{
		Items: []domain.LineItem{
			{CartID: "c1", ProductID: "A", Variant: "10", Price: 100, Quantity: 2, Inventory: 5},
			{CartID: "c2", ProductID: "B", Price: 80, Quantity: 1, Inventory: 3},
		},
		Total:     280,
		UnitCount: 3,
	}
}

func TestSubmit_SequentialOrderPerLineItem(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{links: []string{"https://pay.example/first", "https://pay.example/second"}}
	sut := NewService(carts, orders)

	link, err := sut.Submit(context.Background(), "s1", validForm())
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/first", link, "first submitted order carries the redirect")
	require.Len(t, orders.requests, 2)
	assert.Equal(t, "A", orders.requests[0].ProductID)
	assert.Equal(t, "10", orders.requests[0].Variant)
	assert.Equal(t, 2, orders.requests[0].Quantity)
	assert.Equal(t, "B", orders.requests[1].ProductID)
	assert.True(t, carts.cleared, "cart is cleared after a fully successful submission")
}

func TestSubmit_SharedFormDataOnEveryOrder(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{links: []string{"https://pay.example/first"}}
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())
	require.NoError(t, err)

	for _, req := range orders.requests {
		assert.Equal(t, "Jordan Lee", req.FullName)
		assert.Equal(t, "jordan@example.com", req.Email)
	}
}

func TestSubmit_ValidationFailureIssuesNoRequests(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{}
	sut := NewService(carts, orders)

	form := validForm()
	form.CardNumber = "1234-5678-9012-345"

	_, err := sut.Submit(context.Background(), "s1", form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid card number", verr.Fields["cardNumber"])
	assert.Empty(t, orders.requests, "validation failure must not reach the network")
	assert.False(t, carts.cleared)
}

func TestSubmit_FailureMidLoopAbortsAndKeepsCart(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{failAt: 2}
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())

	require.ErrorIs(t, err, backend.ErrOrderRejected)
	assert.Len(t, orders.requests, 2, "loop stops at the failed request")
	assert.False(t, carts.cleared, "cart stays intact for retry")
}

func TestSubmit_EmptyCartIsRejected(t *testing.T) {
	carts := &mockCarts{}
	orders := &mockOrders{}
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.requests)
}

func TestSubmit_MissingPaymentLinkIsAnError(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{} // responses carry no link
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())

	assert.ErrorIs(t, err, ErrNoPaymentLink)
	assert.False(t, carts.cleared)
}

func TestSubmit_FirstFailureKeepsCartAndStopsImmediately(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{failAt: 1}
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())

	require.Error(t, err)
	assert.Len(t, orders.requests, 1)
	assert.False(t, carts.cleared)
}

func TestSubmit_ErrorsWrapForRetrySurface(t *testing.T) {
	carts := &mockCarts{snap: twoItemCart()}
	orders := &mockOrders{failAt: 1}
	sut := NewService(carts, orders)

	_, err := sut.Submit(context.Background(), "s1", validForm())
	assert.True(t, errors.Is(err, backend.ErrOrderRejected))
}
