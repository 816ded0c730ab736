package model

import (
	"fmt"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeOutOfStock          = "OUT_OF_STOCK"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeMissingShippingInfo = "MISSING_SHIPPING_INFO"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeEmailTaken          = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Sản phẩm không tồn tại")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Đơn hàng không tồn tại")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "Người dùng không tồn tại")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Số lượng phải lớn hơn 0")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Giỏ hàng trống")
	ErrMissingShipping    = NewDomainError(ErrCodeMissingShippingInfo, "Thiếu thông tin giao hàng")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Trạng thái không hợp lệ")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "Email đã được sử dụng")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Email hoặc mật khẩu không đúng")
)

// NewOutOfStockError reports a product that has no stock left at all.
func NewOutOfStockError(name string) *DomainError {
	return NewDomainError(ErrCodeOutOfStock, fmt.Sprintf("%s hiện đã hết hàng.", name))
}

// NewInsufficientStockError reports the exact remaining headroom for a product
// when a cart mutation would exceed live stock.
func NewInsufficientStockError(name string, remaining int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock,
		fmt.Sprintf("%s chỉ còn %d sản phẩm trong kho.", name, remaining))
}

// StockProblem describes one cart line that failed stock validation at checkout.
type StockProblem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
	Gone        bool   `json:"gone"`
}

func (p StockProblem) String() string {
	if p.Gone {
		return fmt.Sprintf("%s - Sản phẩm không tồn tại", p.ProductName)
	}
	return fmt.Sprintf("%s - chỉ còn %d sản phẩm (bạn đặt %d)", p.ProductName, p.Available, p.Requested)
}

// CheckoutError carries every failed cart line so the caller sees the complete
// list of problems in a single round trip.
type CheckoutError struct {
	Problems []StockProblem
}

func (e *CheckoutError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return "Một số sản phẩm không đủ hàng:\n" + strings.Join(lines, "\n")
}
