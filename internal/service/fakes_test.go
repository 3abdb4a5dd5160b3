package service

import (
	"context"
	"database/sql"
	"strings"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory stand-ins for the Postgres repos, mirroring their contracts:
// nil result for not-found lookups, atomic overwrite-by-external-id upsert.

type fakePartnerRepo struct {
	partners []*domain.Partner
}

func (f *fakePartnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	for _, p := range f.partners {
		if p.Email == partner.Email {
			return domain.ErrPartnerEmailTaken
		}
	}
	cp := *partner
	f.partners = append(f.partners, &cp)
	return nil
}

func (f *fakePartnerRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	for _, p := range f.partners {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) FindByIdOrTag(ctx context.Context, identifier string) (*domain.Partner, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		if p, _ := f.FindById(ctx, id); p != nil {
			return p, nil
		}
	}
	for _, p := range f.partners {
		if p.ShopifyTag == "partner_"+identifier {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) FindByEmail(ctx context.Context, email string) (*domain.Partner, error) {
	for _, p := range f.partners {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePartnerRepo) List(ctx context.Context) ([]domain.Partner, error) {
	out := make([]domain.Partner, 0, len(f.partners))
	for _, p := range f.partners {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePartnerRepo) Stats(ctx context.Context, partnerID uuid.UUID) (*domain.PartnerStats, error) {
	return &domain.PartnerStats{}, nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Upsert(ctx context.Context, order *domain.Order) error {
	if existing, ok := f.orders[order.ShopifyOrderID]; ok {
		existing.CustomerEmail = order.CustomerEmail
		existing.TotalAmount = order.TotalAmount
		existing.CommissionAmount = order.CommissionAmount
		existing.CommissionStatus = order.CommissionStatus
		existing.OrderStatus = order.OrderStatus
		existing.UpdatedAt = order.UpdatedAt
		return nil
	}
	cp := *order
	f.orders[order.ShopifyOrderID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByShopifyId(ctx context.Context, shopifyOrderID string) (*domain.Order, error) {
	o, ok := f.orders[shopifyOrderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, shopifyOrderID string) (bool, error) {
	o, ok := f.orders[shopifyOrderID]
	if !ok {
		return false, nil
	}
	o.OrderStatus = domain.OrderStatusPaid
	o.CommissionStatus = domain.CommissionPending
	return true, nil
}

func (f *fakeOrderRepo) MarkCancelled(ctx context.Context, shopifyOrderID string) (bool, error) {
	o, ok := f.orders[shopifyOrderID]
	if !ok {
		return false, nil
	}
	o.OrderStatus = domain.OrderStatusCancelled
	o.CommissionAmount = decimal.Zero
	o.CommissionStatus = domain.CommissionPending
	return true, nil
}

func (f *fakeOrderRepo) ApplyRefund(ctx context.Context, shopifyOrderID string, remainingTotal, newCommission decimal.Decimal, orderStatus string) (bool, error) {
	o, ok := f.orders[shopifyOrderID]
	if !ok {
		return false, nil
	}
	o.TotalAmount = remainingTotal
	o.CommissionAmount = newCommission
	o.OrderStatus = orderStatus
	return true, nil
}

func (f *fakeOrderRepo) MarkCommissionPaid(ctx context.Context, tx *sql.Tx, partnerID uuid.UUID) (decimal.Decimal, int64, error) {
	sum := decimal.Zero
	var count int64
	for _, o := range f.orders {
		if o.PartnerID.Valid && o.PartnerID.UUID == partnerID &&
			o.OrderStatus == domain.OrderStatusPaid &&
			o.CommissionStatus == domain.CommissionPending &&
			o.CommissionAmount.IsPositive() {
			o.CommissionStatus = domain.CommissionPaid
			sum = sum.Add(o.CommissionAmount)
			count++
		}
	}
	return sum, count, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

var _ repo.PartnerRepo = (*fakePartnerRepo)(nil)
var _ repo.OrderRepo = (*fakeOrderRepo)(nil)
