package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// CommissionPayment is a batched payout ledger row covering a partner's
// payable commission over [PeriodStart, PeriodEnd).
type CommissionPayment struct {
	ID            uuid.UUID
	PartnerID     uuid.UUID
	Amount        decimal.Decimal
	PeriodStart   time.Time
	PeriodEnd     time.Time
	PaymentDate   *time.Time
	PaymentMethod string
	Status        PaymentStatus
	CreatedAt     time.Time
}
