package model

import "time"

// Product represents a product in the catalogue. Name, price and image are
// snapshotted onto cart lines and order items at the time they are captured,
// so later catalogue edits never rewrite history.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	CategoryID   int64     `json:"categoryId" db:"category_id"`
	CategoryName string    `json:"categoryName,omitempty" db:"category_name"`
	Price        float64   `json:"price" db:"price"`
	OldPrice     *float64  `json:"oldPrice,omitempty" db:"old_price"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	ImageGallery []string  `json:"imageGallery" db:"image_gallery"`
	Stock        int       `json:"stock" db:"stock"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAvailable reports whether the product can still be bought.
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// Category groups products in the catalogue.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// ProductFilter holds the optional filters for catalogue listings.
type ProductFilter struct {
	Search     string
	CategoryID int64
	Page       int
	PageSize   int
}

// ProductRequest is the admin payload for creating or updating a product.
type ProductRequest struct {
	Name        string   `json:"name"`
	CategoryID  int64    `json:"categoryId"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"oldPrice,omitempty"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
}

// Price adjustment directions for bulk admin updates.
const (
	PriceIncrease = "increase"
	PriceDecrease = "decrease"
)
