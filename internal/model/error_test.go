package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsufficientStockError_MessageNamesHeadroom(t *testing.T) {
	err := NewInsufficientStockError("Áo thun nam", 2)

	assert.Equal(t, ErrCodeInsufficientStock, err.Code)
	assert.Equal(t, "Áo thun nam chỉ còn 2 sản phẩm trong kho.", err.Error())
}

func TestNewOutOfStockError(t *testing.T) {
	err := NewOutOfStockError("Quần jean")

	assert.Equal(t, ErrCodeOutOfStock, err.Code)
	assert.Equal(t, "Quần jean hiện đã hết hàng.", err.Error())
}

func TestCheckoutError_ListsEveryProblem(t *testing.T) {
	err := &CheckoutError{Problems: []StockProblem{
		{ProductName: "Áo thun nam", Available: 2, Requested: 3},
		{ProductName: "Quần jean", Requested: 1, Gone: true},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "Một số sản phẩm không đủ hàng")
	assert.Contains(t, msg, "Áo thun nam - chỉ còn 2 sản phẩm (bạn đặt 3)")
	assert.Contains(t, msg, "Quần jean - Sản phẩm không tồn tại")
}

func TestDomainError_UnwrapsWithErrorsAs(t *testing.T) {
	var domainErr *DomainError
	wrapped := errors.Join(errors.New("outer"), ErrEmptyCart)

	require.ErrorAs(t, wrapped, &domainErr)
	assert.Equal(t, ErrCodeEmptyCart, domainErr.Code)
	assert.Equal(t, "Giỏ hàng trống", domainErr.Message)
}
