package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"attomax-partners/internal/commission"
	"attomax-partners/internal/domain"
	"attomax-partners/internal/infrastructure/shopify"
	"attomax-partners/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ack is the acknowledgment returned to the webhook sender. No-op outcomes
// (missing order, no attribution) are still acknowledgments: Shopify would
// otherwise retry a delivery that is correctly doing nothing.
type Ack struct {
	Message          string
	PartnerID        string
	CommissionAmount *decimal.Decimal
}

type WebhookService interface {
	// HandleOrderEvent routes one webhook delivery by topic. Handlers are
	// idempotent and tolerate out-of-order delivery: every mutation is
	// keyed by the immutable Shopify order id.
	HandleOrderEvent(ctx context.Context, topic string, order shopify.OrderPayload) (Ack, error)
}

type webhookService struct {
	partnerRepo repo.PartnerRepo
	orderRepo   repo.OrderRepo
}

func NewWebhookService(partnerRepo repo.PartnerRepo, orderRepo repo.OrderRepo) WebhookService {
	return &webhookService{
		partnerRepo: partnerRepo,
		orderRepo:   orderRepo,
	}
}

func (s *webhookService) HandleOrderEvent(ctx context.Context, topic string, order shopify.OrderPayload) (Ack, error) {
	var handler func(context.Context, shopify.OrderPayload) (Ack, error)
	switch topic {
	case shopify.TopicOrdersCreate:
		handler = s.handleOrderCreate
	case shopify.TopicOrdersPaid:
		handler = s.handleOrderPaid
	case shopify.TopicOrdersCancelled:
		handler = s.handleOrderCancelled
	case shopify.TopicOrdersRefunded:
		handler = s.handleOrderRefunded
	default:
		// Topics this service does not handle are acked without looking at
		// the body at all; rejecting them would only make Shopify retry.
		log.Printf("Unhandled webhook topic: %s", topic)
		return Ack{Message: "Webhook received but not processed"}, nil
	}

	// Order events without an id cannot be keyed and are malformed.
	if order.ID == 0 {
		return Ack{}, domain.ErrMissingOrderID
	}
	return handler(ctx, order)
}

func (s *webhookService) handleOrderCreate(ctx context.Context, order shopify.OrderPayload) (Ack, error) {
	shopifyOrderID := strconv.FormatInt(order.ID, 10)

	identifier, attributed := shopify.ExtractPartner(order)
	if !attributed {
		log.Printf("No partner attribution found for order: %s", shopifyOrderID)
		return Ack{Message: "Order processed (no partner)"}, nil
	}

	partner, err := s.partnerRepo.FindByIdOrTag(ctx, identifier)
	if err != nil {
		return Ack{}, err
	}
	if partner == nil {
		return Ack{}, fmt.Errorf("%w: %s", domain.ErrPartnerNotFound, identifier)
	}

	total, err := parseAmount(order.TotalPrice)
	if err != nil {
		return Ack{}, err
	}
	commissionAmount := commission.Compute(total, partner.CommissionRate)

	orderStatus := order.FinancialStatus
	if orderStatus == "" {
		orderStatus = domain.OrderStatusPending
	}

	now := time.Now()
	record := &domain.Order{
		ID:               uuid.New(),
		ShopifyOrderID:   shopifyOrderID,
		PartnerID:        uuid.NullUUID{UUID: partner.ID, Valid: true},
		CustomerEmail:    order.Email,
		TotalAmount:      total,
		CommissionAmount: commissionAmount,
		CommissionStatus: domain.CommissionPending,
		OrderStatus:      orderStatus,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.orderRepo.Upsert(ctx, record); err != nil {
		return Ack{}, err
	}

	log.Printf("Order created: %s for partner %s, commission: %s", shopifyOrderID, partner.Name, commissionAmount)
	return Ack{
		Message:          "Order created successfully",
		PartnerID:        partner.ID.String(),
		CommissionAmount: &commissionAmount,
	}, nil
}

func (s *webhookService) handleOrderPaid(ctx context.Context, order shopify.OrderPayload) (Ack, error) {
	shopifyOrderID := strconv.FormatInt(order.ID, 10)

	found, err := s.orderRepo.MarkPaid(ctx, shopifyOrderID)
	if err != nil {
		return Ack{}, err
	}
	if !found {
		// Paid arrived before (or without) a create we attributed; never
		// fabricate an order for it.
		log.Printf("Order paid for unknown order %s, ignoring", shopifyOrderID)
		return Ack{Message: "Order payment processed"}, nil
	}

	log.Printf("Order paid: %s - commission eligible for payout", shopifyOrderID)
	return Ack{Message: "Order payment processed"}, nil
}

func (s *webhookService) handleOrderCancelled(ctx context.Context, order shopify.OrderPayload) (Ack, error) {
	shopifyOrderID := strconv.FormatInt(order.ID, 10)

	found, err := s.orderRepo.MarkCancelled(ctx, shopifyOrderID)
	if err != nil {
		return Ack{}, err
	}
	if found {
		log.Printf("Order cancelled: %s - commission reversed", shopifyOrderID)
	}
	return Ack{Message: "Order cancellation processed"}, nil
}

func (s *webhookService) handleOrderRefunded(ctx context.Context, order shopify.OrderPayload) (Ack, error) {
	shopifyOrderID := strconv.FormatInt(order.ID, 10)

	existing, err := s.orderRepo.FindByShopifyId(ctx, shopifyOrderID)
	if err != nil {
		return Ack{}, err
	}
	if existing == nil {
		return Ack{Message: "Order refund processed"}, nil
	}
	if !existing.PartnerID.Valid {
		return Ack{Message: "Order refund processed"}, nil
	}

	partner, err := s.partnerRepo.FindById(ctx, existing.PartnerID.UUID)
	if err != nil {
		return Ack{}, err
	}
	if partner == nil {
		return Ack{Message: "Order refund processed"}, nil
	}

	originalTotal, err := parseAmount(order.TotalPrice)
	if err != nil {
		return Ack{}, err
	}
	refunded, err := parseAmount(order.TotalRefunded)
	if err != nil {
		return Ack{}, err
	}

	remaining, newCommission := commission.ApplyRefund(originalTotal, refunded, partner.CommissionRate)
	orderStatus := domain.OrderStatusRefunded
	if remaining.IsPositive() {
		orderStatus = domain.OrderStatusPartiallyRefunded
	}

	if _, err := s.orderRepo.ApplyRefund(ctx, shopifyOrderID, remaining, newCommission, orderStatus); err != nil {
		return Ack{}, err
	}

	log.Printf("Order refunded: %s - commission adjusted to %s", shopifyOrderID, newCommission)
	return Ack{Message: "Order refund processed"}, nil
}

// parseAmount reads a Shopify string-encoded decimal. Empty means zero;
// anything unparseable is a malformed payload.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return d, nil
}
