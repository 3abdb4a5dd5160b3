package repo

import (
	"context"
	"database/sql"
	"fmt"

	"attomax-partners/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableCommission is a partner's summed payable commission, as found by
// the payout worker.
type PayableCommission struct {
	PartnerID uuid.UUID
	Amount    decimal.Decimal
}

type PaymentRepo interface {
	Create(ctx context.Context, tx *sql.Tx, payment *domain.CommissionPayment) error
	List(ctx context.Context) ([]domain.CommissionPayment, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]domain.CommissionPayment, error)
	// FindPayable sums pending commission on paid orders per partner.
	FindPayable(ctx context.Context) ([]PayableCommission, error)
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, partner_id, amount, period_start, period_end, payment_date, payment_method, status, created_at`

func (r *paymentRepo) Create(ctx context.Context, tx *sql.Tx, payment *domain.CommissionPayment) error {
	query := `INSERT INTO commission_payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.ExecContext(ctx, query,
		payment.ID, payment.PartnerID, payment.Amount, payment.PeriodStart,
		payment.PeriodEnd, payment.PaymentDate, payment.PaymentMethod,
		payment.Status, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create commission payment: %w", err)
	}
	return nil
}

func (r *paymentRepo) List(ctx context.Context) ([]domain.CommissionPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM commission_payments ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list commission payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]domain.CommissionPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM commission_payments WHERE partner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, fmt.Errorf("list commission payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepo) FindPayable(ctx context.Context) ([]PayableCommission, error) {
	query := `
		SELECT partner_id, SUM(commission_amount)
		FROM orders
		WHERE partner_id IS NOT NULL
		  AND order_status = 'paid'
		  AND commission_status = 'PENDING'
		  AND commission_amount > 0
		GROUP BY partner_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find payable commissions: %w", err)
	}
	defer rows.Close()

	var payables []PayableCommission
	for rows.Next() {
		var p PayableCommission
		if err := rows.Scan(&p.PartnerID, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan payable commission: %w", err)
		}
		payables = append(payables, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate payable commissions: %w", rows.Err())
	}
	return payables, nil
}

func collectPayments(rows *sql.Rows) ([]domain.CommissionPayment, error) {
	var payments []domain.CommissionPayment
	for rows.Next() {
		var p domain.CommissionPayment
		var status string
		var paymentDate sql.NullTime
		err := rows.Scan(
			&p.ID,
			&p.PartnerID,
			&p.Amount,
			&p.PeriodStart,
			&p.PeriodEnd,
			&paymentDate,
			&p.PaymentMethod,
			&status,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan commission payment: %w", err)
		}
		if paymentDate.Valid {
			p.PaymentDate = &paymentDate.Time
		}
		p.Status = domain.PaymentStatus(status)
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate commission payments: %w", rows.Err())
	}
	return payments, nil
}
