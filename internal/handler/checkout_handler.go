package handler

import (
	"net/http"

	"shop-online/internal/middleware"
	"shop-online/internal/model"
	"shop-online/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout HTTP requests. Checkout requires an
// authenticated user so the cart is always the persistent one.
type CheckoutHandler struct {
	checkout service.CheckoutService
	users    service.UserService
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, users service.UserService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		users:    users,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// PlaceOrder handles POST /api/checkout requests.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var shipping model.ShippingInfo
	if r.ContentLength > 0 {
		if !decodeJSON(w, r, &shipping, h.logger) {
			return
		}
	}

	resp, err := h.checkout.PlaceOrder(r.Context(), user, shipping)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// QuickCheckout handles POST /api/checkout/quick requests.
func (h *CheckoutHandler) QuickCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	resp, err := h.checkout.QuickCheckout(r.Context(), user)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// caller loads the authenticated user's account record.
func (h *CheckoutHandler) caller(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return nil, false
	}

	user, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return nil, false
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "unknown account", h.logger)
		return nil, false
	}
	return user, true
}
