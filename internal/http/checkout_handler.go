package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sneakhaus/storefront/internal/checkout"
)

// CheckoutAPI drives the checkout submission for one session.
type CheckoutAPI interface {
	Submit(ctx context.Context, sessionID string, form checkout.Form) (string, error)
}

type CheckoutHandler struct {
	checkout CheckoutAPI
	timeout  time.Duration
}

func NewCheckoutHandler(api CheckoutAPI, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: api,
		timeout:  timeout,
	}
}

type CheckoutResponseDTO struct {
	PaymentLink string `json:"payment_link"`
}

type ValidationErrorDTO struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	link, err := h.checkout.Submit(ctx, sessionFromContext(r.Context()), form)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorDTO{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "Your cart is empty")
		default:
			// cart state is preserved; the user can retry
			respondError(w, http.StatusBadGateway, "order_failed", "Order failed to process. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{PaymentLink: link})
}
