package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
)

// Order lifecycle statuses mirror Shopify's financial_status and stay
// free-form text in storage; these are the values the webhook pipeline
// writes itself.
const (
	OrderStatusPending           = "pending"
	OrderStatusPaid              = "paid"
	OrderStatusCancelled         = "cancelled"
	OrderStatusPartiallyRefunded = "partially_refunded"
	OrderStatusRefunded          = "refunded"
)

// Order is a Shopify order attributed to a partner. ShopifyOrderID is the
// idempotency key: every webhook mutation is keyed by it, so redelivered
// events collapse onto a single row.
type Order struct {
	ID               uuid.UUID
	ShopifyOrderID   string
	PartnerID        uuid.NullUUID // unattributed orders carry no partner
	CustomerEmail    string
	TotalAmount      decimal.Decimal
	CommissionAmount decimal.Decimal
	CommissionStatus CommissionStatus
	OrderStatus      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
