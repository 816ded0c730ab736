package router

import (
	"net/http"

	"shop-online/internal/handler"
	"shop-online/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	User     *handler.UserHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, jwtSecret string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public catalogue
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/categories", h.Category.List)

	// Cart (guest or authenticated)
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("POST /api/cart/items", h.Cart.Add)
	mux.HandleFunc("PUT /api/cart/items/{productId}", h.Cart.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", h.Cart.Remove)
	mux.HandleFunc("POST /api/cart/items/{productId}/increase", h.Cart.Increase)
	mux.HandleFunc("POST /api/cart/items/{productId}/decrease", h.Cart.Decrease)

	// Accounts
	mux.HandleFunc("POST /api/auth/register", h.User.Register)
	mux.HandleFunc("POST /api/auth/login", h.User.Login)
	mux.HandleFunc("GET /api/profile", middleware.RequireUser(h.User.GetProfile))
	mux.HandleFunc("PUT /api/profile", middleware.RequireUser(h.User.UpdateProfile))

	// Checkout and orders (authenticated)
	mux.HandleFunc("POST /api/checkout", middleware.RequireUser(h.Checkout.PlaceOrder))
	mux.HandleFunc("POST /api/checkout/quick", middleware.RequireUser(h.Checkout.QuickCheckout))
	mux.HandleFunc("GET /api/orders", middleware.RequireUser(h.Order.ListMine))
	mux.HandleFunc("GET /api/orders/{id}", middleware.RequireUser(h.Order.GetByID))

	// Admin
	mux.HandleFunc("POST /api/products", middleware.RequireAdmin(h.Product.Create))
	mux.HandleFunc("PUT /api/products/{id}", middleware.RequireAdmin(h.Product.Update))
	mux.HandleFunc("DELETE /api/products/{id}", middleware.RequireAdmin(h.Product.Delete))
	mux.HandleFunc("POST /api/products/bulk-delete", middleware.RequireAdmin(h.Product.BulkDelete))
	mux.HandleFunc("POST /api/products/bulk-price", middleware.RequireAdmin(h.Product.BulkAdjustPrice))
	mux.HandleFunc("PUT /api/products/{id}/stock", middleware.RequireAdmin(h.Product.SetStock))
	mux.HandleFunc("POST /api/products/{id}/images", middleware.RequireAdmin(h.Product.UploadImages))
	mux.HandleFunc("POST /api/categories", middleware.RequireAdmin(h.Category.Create))
	mux.HandleFunc("GET /api/admin/orders", middleware.RequireAdmin(h.Order.Search))
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", middleware.RequireAdmin(h.Order.UpdateStatus))
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(h.User.List))
	mux.HandleFunc("GET /api/admin/users/{id}", middleware.RequireAdmin(h.User.GetDetail))

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate
	var root http.Handler = mux
	root = middleware.Authenticate(jwtSecret, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
