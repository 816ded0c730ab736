package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"shop-online/internal/middleware"
	"shop-online/internal/model"
	"shop-online/internal/service"
	"shop-online/internal/session"

	"github.com/rs/zerolog"
)

// sessionCookie carries the anonymous cart token.
const sessionCookie = "cart_session"

// CartHandler handles shopping-cart HTTP requests.
type CartHandler struct {
	service    service.CartService
	sessionTTL time.Duration
	logger     zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, sessionTTL time.Duration, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service:    service,
		sessionTTL: sessionTTL,
		logger:     logger.With().Str("handler", "cart").Logger(),
	}
}

// owner resolves the cart owner: the authenticated user when present, the
// session cookie otherwise. A missing cookie is minted on the spot so guests
// keep the same cart across requests.
func (h *CartHandler) owner(w http.ResponseWriter, r *http.Request) model.CartOwner {
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		return model.CartOwner{UserID: identity.UserID}
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return model.CartOwner{SessionToken: cookie.Value}
	}

	token := session.NewToken()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return model.CartOwner{SessionToken: token}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)

	items, err := h.service.Get(r.Context(), owner)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Items: items, Total: model.CartTotal(items)})
}

// Add handles POST /api/cart/items requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)

	var req model.AddToCartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.service.Add(r.Context(), owner, req.ProductID, req.Quantity); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.respondWithCart(w, r, owner)
}

// Increase handles POST /api/cart/items/{productId}/increase requests.
func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.Increase)
}

// Decrease handles POST /api/cart/items/{productId}/decrease requests.
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.Decrease)
}

// SetQuantity handles PUT /api/cart/items/{productId} requests.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)

	productID, ok := cartProductID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.service.SetQuantity(r.Context(), owner, productID, req.Quantity); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.respondWithCart(w, r, owner)
}

// Remove handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.Remove)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)

	if err := h.service.Clear(r.Context(), owner); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Items: []model.CartItem{}, Total: 0})
}

// mutateLine applies a single-line cart operation and echoes the cart back.
func (h *CartHandler) mutateLine(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, owner model.CartOwner, productID int64) error) {
	owner := h.owner(w, r)

	productID, ok := cartProductID(w, r, h.logger)
	if !ok {
		return
	}

	if err := op(r.Context(), owner, productID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.respondWithCart(w, r, owner)
}

// respondWithCart writes the owner's current cart as the response body.
func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, owner model.CartOwner) {
	items, err := h.service.Get(r.Context(), owner)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.CartResponse{Items: items, Total: model.CartTotal(items)})
}

// cartProductID extracts the {productId} path segment.
func cartProductID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid product ID", logger)
		return 0, false
	}
	return id, true
}
