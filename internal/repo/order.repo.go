package repo

import (
	"context"
	"database/sql"
	"fmt"

	"attomax-partners/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	// Upsert creates or overwrites the order row keyed by shopify_order_id
	// in a single atomic statement, which is what makes redelivered webhook
	// events safe under concurrency.
	Upsert(ctx context.Context, order *domain.Order) error
	FindByShopifyId(ctx context.Context, shopifyOrderID string) (*domain.Order, error)
	MarkPaid(ctx context.Context, shopifyOrderID string) (bool, error)
	MarkCancelled(ctx context.Context, shopifyOrderID string) (bool, error)
	ApplyRefund(ctx context.Context, shopifyOrderID string, remainingTotal, newCommission decimal.Decimal, orderStatus string) (bool, error)
	// MarkCommissionPaid flips a partner's payable commission rows to PAID
	// inside the payout transaction and returns the amount actually
	// settled, which may differ from an earlier scan.
	MarkCommissionPaid(ctx context.Context, tx *sql.Tx, partnerID uuid.UUID) (decimal.Decimal, int64, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

const orderColumns = `id, shopify_order_id, partner_id, customer_email, total_amount, commission_amount, commission_status, order_status, created_at, updated_at`

func (r *orderRepo) Upsert(ctx context.Context, order *domain.Order) error {
	// partner_id is intentionally not overwritten on conflict: attribution
	// is decided once, by the first create event that resolved a partner.
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (shopify_order_id) DO UPDATE SET
			customer_email = EXCLUDED.customer_email,
			total_amount = EXCLUDED.total_amount,
			commission_amount = EXCLUDED.commission_amount,
			commission_status = EXCLUDED.commission_status,
			order_status = EXCLUDED.order_status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.ShopifyOrderID, order.PartnerID, order.CustomerEmail,
		order.TotalAmount, order.CommissionAmount, order.CommissionStatus,
		order.OrderStatus, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

func (r *orderRepo) FindByShopifyId(ctx context.Context, shopifyOrderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE shopify_order_id = $1`
	var o domain.Order
	err := scanOrder(r.db.QueryRowContext(ctx, query, shopifyOrderID), &o)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, shopifyOrderID string) (bool, error) {
	query := `
		UPDATE orders
		SET order_status = 'paid', commission_status = 'PENDING', updated_at = now()
		WHERE shopify_order_id = $1
	`
	return r.execFound(ctx, query, shopifyOrderID)
}

func (r *orderRepo) MarkCancelled(ctx context.Context, shopifyOrderID string) (bool, error) {
	query := `
		UPDATE orders
		SET order_status = 'cancelled', commission_amount = 0, commission_status = 'PENDING', updated_at = now()
		WHERE shopify_order_id = $1
	`
	return r.execFound(ctx, query, shopifyOrderID)
}

func (r *orderRepo) ApplyRefund(ctx context.Context, shopifyOrderID string, remainingTotal, newCommission decimal.Decimal, orderStatus string) (bool, error) {
	query := `
		UPDATE orders
		SET total_amount = $2, commission_amount = $3, order_status = $4, updated_at = now()
		WHERE shopify_order_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, shopifyOrderID, remainingTotal, newCommission, orderStatus)
	if err != nil {
		return false, fmt.Errorf("apply refund: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply refund: %w", err)
	}
	return rows > 0, nil
}

func (r *orderRepo) MarkCommissionPaid(ctx context.Context, tx *sql.Tx, partnerID uuid.UUID) (decimal.Decimal, int64, error) {
	query := `
		WITH marked AS (
			UPDATE orders
			SET commission_status = 'PAID', updated_at = now()
			WHERE partner_id = $1 AND order_status = 'paid' AND commission_status = 'PENDING' AND commission_amount > 0
			RETURNING commission_amount
		)
		SELECT COALESCE(SUM(commission_amount), 0), COUNT(*) FROM marked
	`
	var amount decimal.Decimal
	var count int64
	if err := tx.QueryRowContext(ctx, query, partnerID).Scan(&amount, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("mark commission paid: %w", err)
	}
	return amount, count, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, nil
}

func (r *orderRepo) execFound(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update order: %w", err)
	}
	return rows > 0, nil
}

func scanOrder(row rowScanner, o *domain.Order) error {
	var commissionStatus string
	err := row.Scan(
		&o.ID,
		&o.ShopifyOrderID,
		&o.PartnerID,
		&o.CustomerEmail,
		&o.TotalAmount,
		&o.CommissionAmount,
		&commissionStatus,
		&o.OrderStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	o.CommissionStatus = domain.CommissionStatus(commissionStatus)
	return nil
}
