package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of states an order can be in. Admins may move
// an order to any of the five states; no other values are accepted.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses returns every allowed status value.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the allowed status values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a placed customer order. Everything except the status is
// immutable once created.
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	UserID       uuid.UUID   `json:"userId" db:"user_id"`
	CustomerName string      `json:"customerName" db:"customer_name"`
	Email        string      `json:"email" db:"email"`
	Address      string      `json:"address" db:"address"`
	PhoneNumber  string      `json:"phoneNumber" db:"phone_number"`
	Status       OrderStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	Items        []OrderItem `json:"items"`
}

// Total returns the order total, derived from the items; it is never stored.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Total()
	}
	return total
}

// OrderItem is a snapshot of a product at the time of purchase, owned
// exclusively by its order.
type OrderItem struct {
	ID          uuid.UUID `json:"-" db:"id"`
	OrderID     uuid.UUID `json:"-" db:"order_id"`
	ProductID   int64     `json:"productId" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

// Total returns the line total.
func (i OrderItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}

// ShippingInfo carries the customer contact fields for a checkout.
type ShippingInfo struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Complete reports whether every shipping field is filled in.
func (s ShippingInfo) Complete() bool {
	return s.CustomerName != "" && s.Email != "" && s.Address != "" && s.PhoneNumber != ""
}

// OrderFilter holds the admin order search filters. From and To are inclusive
// calendar days; To covers up to the end of its day.
type OrderFilter struct {
	Status   OrderStatus
	Search   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// CheckoutResponse is returned after a successful checkout.
type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Message string    `json:"message"`
}

// UpdateStatusRequest is the admin payload for changing an order's status.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderListResponse is a paged order listing with the total count for
// pagination UI.
type OrderListResponse struct {
	Orders     []Order `json:"orders"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}
