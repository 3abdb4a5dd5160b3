package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product is a catalog entry synced from the Shopify Admin API.
type Product struct {
	ID               uuid.UUID
	ShopifyProductID string
	Title            string
	Description      string
	Price            decimal.Decimal
	ImageURL         string
	Status           ProductStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
