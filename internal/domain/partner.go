package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartnerStatus string

const (
	PartnerPending   PartnerStatus = "PENDING"
	PartnerActive    PartnerStatus = "ACTIVE"
	PartnerSuspended PartnerStatus = "SUSPENDED"
)

// Partner is a referral partner earning commission on attributed orders.
// Partners are created by admins and never deleted; orders keep referencing
// them after suspension.
type Partner struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Domain         string
	LogoURL        string
	BrandName      string
	CommissionRate decimal.Decimal // percentage, 0-100
	Status         PartnerStatus
	ShopifyTag     string // e.g. "partner_progolf_miami"
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PartnerStats aggregates a partner's attributed orders for dashboards.
type PartnerStats struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	TotalCommission   decimal.Decimal
	PendingCommission decimal.Decimal
}
