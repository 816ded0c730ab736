package handler

import (
	"net/http"
	"time"

	"shop-online/internal/middleware"
	"shop-online/internal/model"
	"shop-online/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// ListMine handles GET /api/orders requests for the authenticated user.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	orders, err := h.service.GetByUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests. Customers may only read
// their own orders; admins may read any.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, model.ErrOrderNotFound.Message, h.logger)
		return
	}

	if identity.Role != model.RoleAdmin && order.UserID != identity.UserID {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "access denied", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Search handles GET /api/admin/orders requests.
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := model.OrderFilter{
		Status:   model.OrderStatus(r.URL.Query().Get("status")),
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", 20),
	}

	var ok bool
	if filter.From, ok = queryDate(w, r, "from", h.logger); !ok {
		return
	}
	if filter.To, ok = queryDate(w, r, "to", h.logger); !ok {
		return
	}

	orders, total, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderListResponse{
		Orders:     orders,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Đã cập nhật trạng thái đơn hàng"})
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, key string, logger zerolog.Logger) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid date, expected YYYY-MM-DD", logger)
		return nil, false
	}
	return &t, true
}
