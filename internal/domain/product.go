package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item available for purchase.
// The json tags correspond to the fields expected in API responses.
// Products are created once when the catalog is loaded and never mutated
// afterwards; the catalog owns them and the cart references them by ID.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"` // Exact decimal so cart totals never drift
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"` // Compared case-insensitively when filtering
	Stock       int32           `json:"stock"`
	Rating      float64         `json:"rating"` // 0.0 to 5.0
}

// User is the customer record held by a session. Display state only;
// no credentials are stored or checked anywhere in this service.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
