package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sneakhaus/storefront/internal/cart"
	"github.com/sneakhaus/storefront/internal/domain"
)

// CartAPI is what the handlers need from the cart service.
type CartAPI interface {
	Get(ctx context.Context, sessionID string) cart.Snapshot
	Add(ctx context.Context, sessionID string, p domain.Product, variant string, quantity int) cart.Mutation
	UpdateQuantity(ctx context.Context, sessionID, cartID string, quantity int) cart.Mutation
	Remove(ctx context.Context, sessionID, cartID string) cart.Mutation
	Clear(ctx context.Context, sessionID string) cart.Mutation
}

type CartHandler struct {
	carts   CartAPI
	timeout time.Duration
}

func NewCartHandler(carts CartAPI, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type ProductDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Inventory int     `json:"inventory"`
	Image     string  `json:"image"`
}

type AddItemRequestDTO struct {
	Product  ProductDTO `json:"product"`
	Variant  string     `json:"variant"`
	Quantity int        `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Message    string            `json:"message,omitempty"`
	Outcome    string            `json:"outcome,omitempty"`
	Items      []domain.LineItem `json:"items"`
	Total      float64           `json:"total"`
	ItemsCount int               `json:"items_count"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap := h.carts.Get(ctx, sessionFromContext(r.Context()))
	respondJSON(w, http.StatusOK, snapshotDTO(snap))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "product id is required")
		return
	}
	if req.Product.Inventory < 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "inventory must not be negative")
		return
	}
	// quantity defaults to 1 when omitted
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	mut := h.carts.Add(ctx, sessionFromContext(r.Context()), domain.Product{
		ID:        req.Product.ID,
		Name:      req.Product.Name,
		Price:     req.Product.Price,
		Inventory: req.Product.Inventory,
		Image:     req.Product.Image,
	}, req.Variant, req.Quantity)

	status := http.StatusCreated
	if mut.Outcome == domain.OutcomeUpdated {
		status = http.StatusOK
	}
	respondJSON(w, status, mutationDTO(mut))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cart_id")
	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// out-of-range quantities are clamped by the store, never rejected here
	mut := h.carts.UpdateQuantity(ctx, sessionFromContext(r.Context()), cartID, req.Quantity)
	respondJSON(w, http.StatusOK, mutationDTO(mut))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cart_id")
	mut := h.carts.Remove(ctx, sessionFromContext(r.Context()), cartID)
	respondJSON(w, http.StatusOK, mutationDTO(mut))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	mut := h.carts.Clear(ctx, sessionFromContext(r.Context()))
	respondJSON(w, http.StatusOK, mutationDTO(mut))
}

func snapshotDTO(snap cart.Snapshot) CartResponseDTO {
	return CartResponseDTO{
		Items:      snap.Items,
		Total:      snap.Total,
		ItemsCount: snap.UnitCount,
	}
}

func mutationDTO(mut cart.Mutation) CartResponseDTO {
	dto := snapshotDTO(mut.Snapshot)
	dto.Outcome = string(mut.Outcome)
	dto.Message = confirmationMessage(mut)
	return dto
}

// confirmationMessage is the user-visible toast text distinguishing what the
// mutation actually did.
func confirmationMessage(mut cart.Mutation) string {
	switch mut.Outcome {
	case domain.OutcomeAdded:
		return fmt.Sprintf("%s added to cart!", mut.Item.Name)
	case domain.OutcomeUpdated:
		if mut.Item.Name != "" {
			return fmt.Sprintf("Updated %s quantity in cart!", mut.Item.Name)
		}
		return "Cart quantity updated"
	case domain.OutcomeRemoved:
		return "Item removed from cart"
	case domain.OutcomeCleared:
		return "Cart cleared!"
	default:
		return ""
	}
}
