package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront API. Every route runs behind the session
// middleware, so handlers can assume a session id in the request context.
func NewRouter(
	carts *CartHandler,
	products *ProductHandler,
	checkouts *CheckoutHandler,
	payments *PaymentHandler,
	themes *ThemeHandler,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{cart_id}", carts.UpdateQuantity)
			r.Delete("/items/{cart_id}", carts.RemoveItem)
			r.Delete("/", carts.ClearCart)
		})

		r.Post("/checkout", checkouts.Submit)

		r.Get("/orders/{order_id}", payments.GetOrder)
		r.Post("/payment/confirm", payments.Confirm)

		r.Get("/theme", themes.Get)
		r.Put("/theme", themes.Put)
	})

	return r
}
