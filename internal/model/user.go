package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Address      string    `json:"address" db:"address"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DisplayName prefers the full name and falls back to the email, which is the
// name used on orders.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token for an authenticated session.
type LoginResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

// ProfileRequest is the payload for updating the shipping profile.
type ProfileRequest struct {
	FullName    string `json:"fullName"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// ShopStats are the aggregate figures shown on the admin users page.
type ShopStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// UserListResponse is a paged user listing with shop statistics.
type UserListResponse struct {
	Users      []User    `json:"users"`
	TotalCount int       `json:"totalCount"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Stats      ShopStats `json:"stats"`
}
