// Package backend is the HTTP client for the external commerce API that
// owns product data, order creation and payment confirmation. The schemas
// here mirror the backend's contract; nothing in it is owned by this service.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sneakhaus/storefront/internal/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderRejected  = errors.New("order creation rejected by backend")
	ErrBackendFailure = errors.New("backend request failed")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
}

func NewClient(cfg Config) *Client {
	hc := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "commerce-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{http: rc, breaker: breaker}
}

// ListProducts fetches the full catalog. No caching, no pagination; the
// storefront renders what the backend returns.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetResult(&products).
			Get("/api/products")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrBackendFailure, resp.StatusCode())
	}
	return products, nil
}

// OrderRequest carries the shared shipping/payment form data plus one line
// item. The backend creates one order per request.
type OrderRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	ProductID  string `json:"productId"`
	Variant    string `json:"variant,omitempty"`
	Quantity   int    `json:"quantity"`
}

type OrderResponse struct {
	OrderID     string `json:"orderId"`
	PaymentLink string `json:"paymentLink"`
}

// CreateOrder submits one order. Any non-2xx response is order-creation
// failure; the caller decides what to do with already-submitted orders.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	var out OrderResponse
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			Post("/api/orders")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrOrderRejected, resp.StatusCode())
	}
	return &out, nil
}

// OrderStatus is the post-payment order descriptor.
type OrderStatus struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zip      string  `json:"zip"`
}

const (
	StatusApproved = "approved"
	StatusFailed   = "failed"
	StatusPending  = "pending"
)

func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderStatus, error) {
	var out OrderStatus
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetResult(&out).
			Get("/api/payment/order/" + orderID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if resp.IsError() {
		return nil, ErrOrderNotFound
	}
	return &out, nil
}

// PaymentRecord is the gateway callback payload recorded after a hosted
// payment completes.
type PaymentRecord struct {
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
}

// SavePayment records a payment confirmation. The endpoint is idempotent:
// a 409 means the payment was already recorded and is treated as success.
func (c *Client) SavePayment(ctx context.Context, rec PaymentRecord) error {
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetBody(rec).
			Post("/api/payment/save-payment")
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrBackendFailure, resp.StatusCode())
	}
	return nil
}
