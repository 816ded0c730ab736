package handler

import (
	"net/http"

	"shop-online/internal/middleware"
	"shop-online/internal/model"
	"shop-online/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserHandler handles account, profile and admin user HTTP requests.
type UserHandler struct {
	users  service.UserService
	carts  service.CartService
	orders service.OrderService
	logger zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, carts service.CartService, orders service.OrderService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		carts:  carts,
		orders: orders,
		logger: logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/auth/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login requests. A guest cart cookie, when
// present, is merged into the user's persistent cart and dropped.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := h.carts.Merge(r.Context(), cookie.Value, resp.UserID); err != nil {
			h.logger.Warn().Err(err).Msg("guest cart merge failed")
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetProfile handles GET /api/profile requests.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeUserNotFound, model.ErrUserNotFound.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile requests.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	var req model.ProfileRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.users.UpdateProfile(r.Context(), identity.UserID, req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Đã cập nhật thông tin"})
}

// GetDetail handles GET /api/admin/users/{id} requests, returning the account
// together with its order history.
func (h *UserHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid user ID format", h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeUserNotFound, model.ErrUserNotFound.Message, h.logger)
		return
	}

	orders, err := h.orders.GetByUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":   user,
		"orders": orders,
	})
}

// List handles GET /api/admin/users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.List(r.Context(), queryInt(r, "page", 1), queryInt(r, "pageSize", 20))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
