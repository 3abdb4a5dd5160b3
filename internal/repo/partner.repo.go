package repo

import (
	"context"
	"database/sql"
	"fmt"

	"attomax-partners/internal/domain"

	"github.com/google/uuid"
)

type PartnerRepo interface {
	Create(ctx context.Context, partner *domain.Partner) error
	FindById(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	// FindByIdOrTag resolves the attribution identifier against either the
	// partner's primary id or the derived partner_<identifier> tag.
	FindByIdOrTag(ctx context.Context, identifier string) (*domain.Partner, error)
	FindByEmail(ctx context.Context, email string) (*domain.Partner, error)
	List(ctx context.Context) ([]domain.Partner, error)
	Stats(ctx context.Context, partnerID uuid.UUID) (*domain.PartnerStats, error)
}

type partnerRepo struct {
	db *sql.DB
}

func NewPartnerRepo(db *sql.DB) PartnerRepo {
	return &partnerRepo{db: db}
}

const partnerColumns = `id, name, email, domain, logo_url, brand_name, commission_rate, status, shopify_tag, created_at, updated_at`

func (r *partnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	query := `INSERT INTO partners (` + partnerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		partner.ID, partner.Name, partner.Email, partner.Domain, partner.LogoURL,
		partner.BrandName, partner.CommissionRate, partner.Status, partner.ShopifyTag,
		partner.CreatedAt, partner.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPartnerEmailTaken
		}
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

func (r *partnerRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *partnerRepo) FindByIdOrTag(ctx context.Context, identifier string) (*domain.Partner, error) {
	// Primary id wins when the identifier parses as one; the derived tag is
	// the fallback strategy.
	if id, err := uuid.Parse(identifier); err == nil {
		partner, err := r.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		if partner != nil {
			return partner, nil
		}
	}

	query := `SELECT ` + partnerColumns + ` FROM partners WHERE shopify_tag = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, "partner_"+identifier))
}

func (r *partnerRepo) FindByEmail(ctx context.Context, email string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *partnerRepo) List(ctx context.Context) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := scanPartner(rows, &p); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate partners: %w", rows.Err())
	}
	return partners, nil
}

func (r *partnerRepo) Stats(ctx context.Context, partnerID uuid.UUID) (*domain.PartnerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(commission_amount), 0),
			COALESCE(SUM(commission_amount) FILTER (WHERE commission_status = 'PENDING' AND order_status = 'paid'), 0)
		FROM orders
		WHERE partner_id = $1
	`
	var stats domain.PartnerStats
	err := r.db.QueryRowContext(ctx, query, partnerID).Scan(
		&stats.TotalOrders,
		&stats.TotalRevenue,
		&stats.TotalCommission,
		&stats.PendingCommission,
	)
	if err != nil {
		return nil, fmt.Errorf("partner stats: %w", err)
	}
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *partnerRepo) scanOne(row rowScanner) (*domain.Partner, error) {
	var p domain.Partner
	err := scanPartner(row, &p)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("find partner: %w", err)
	}
	return &p, nil
}

func scanPartner(row rowScanner, p *domain.Partner) error {
	var status string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Domain,
		&p.LogoURL,
		&p.BrandName,
		&p.CommissionRate,
		&status,
		&p.ShopifyTag,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Status = domain.PartnerStatus(status)
	return nil
}
