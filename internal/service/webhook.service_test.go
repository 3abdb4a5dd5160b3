package service

import (
	"context"
	"testing"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/infrastructure/shopify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestPartner(t *testing.T, rate, tag string) *domain.Partner {
	t.Helper()
	return &domain.Partner{
		ID:             uuid.New(),
		Name:           "Pro Golf Miami",
		Email:          "info@progolfmiami.com",
		CommissionRate: dec(t, rate),
		Status:         domain.PartnerActive,
		ShopifyTag:     tag,
	}
}

func setup(t *testing.T, partners ...*domain.Partner) (WebhookService, *fakePartnerRepo, *fakeOrderRepo) {
	t.Helper()
	partnerRepo := &fakePartnerRepo{partners: partners}
	orderRepo := newFakeOrderRepo()
	return NewWebhookService(partnerRepo, orderRepo), partnerRepo, orderRepo
}

func TestOrderCreateAttributesAndComputesCommission(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID:              1001,
		Email:           "buyer@example.com",
		TotalPrice:      "100.00",
		FinancialStatus: "pending",
		Tags:            "partner_progolf_miami",
	})
	require.NoError(t, err)

	assert.Equal(t, partner.ID.String(), ack.PartnerID)
	require.NotNil(t, ack.CommissionAmount)
	assert.True(t, dec(t, "15.00").Equal(*ack.CommissionAmount))

	order, err := orders.FindByShopifyId(context.Background(), "1001")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.PartnerID.Valid)
	assert.Equal(t, partner.ID, order.PartnerID.UUID)
	assert.Equal(t, "buyer@example.com", order.CustomerEmail)
	assert.True(t, dec(t, "100.00").Equal(order.TotalAmount))
	assert.True(t, dec(t, "15.00").Equal(order.CommissionAmount))
	assert.Equal(t, domain.CommissionPending, order.CommissionStatus)
	assert.Equal(t, "pending", order.OrderStatus)
}

func TestOrderCreateIsIdempotent(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	payload := shopify.OrderPayload{
		ID:         1001,
		TotalPrice: "100.00",
		Tags:       "partner_progolf_miami",
	}

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, payload)
	require.NoError(t, err)
	first, err := orders.FindByShopifyId(context.Background(), "1001")
	require.NoError(t, err)

	// Redelivery of the identical event must collapse onto the same row.
	_, err = svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, payload)
	require.NoError(t, err)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.True(t, first.TotalAmount.Equal(all[0].TotalAmount))
	assert.True(t, first.CommissionAmount.Equal(all[0].CommissionAmount))
	assert.Equal(t, first.CommissionStatus, all[0].CommissionStatus)
	assert.Equal(t, first.OrderStatus, all[0].OrderStatus)
}

func TestOrderCreateWithoutAttributionAcksWithoutRecording(t *testing.T) {
	svc, _, orders := setup(t, newTestPartner(t, "15", "partner_progolf_miami"))

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID:         2002,
		TotalPrice: "250.00",
		Tags:       "vip, rush",
	})
	require.NoError(t, err)
	assert.Equal(t, "Order processed (no partner)", ack.Message)
	assert.Empty(t, ack.PartnerID)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderCreateUnknownPartnerFails(t *testing.T) {
	svc, _, orders := setup(t)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID:         2003,
		TotalPrice: "100.00",
		Tags:       "partner_nobody",
	})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "a create for an unknown partner must not create an order")
}

func TestOrderPaidBeforeCreateIsNoOp(t *testing.T) {
	svc, _, orders := setup(t)

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersPaid, shopify.OrderPayload{ID: 3001})
	require.NoError(t, err)
	assert.Equal(t, "Order payment processed", ack.Message)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "paid before create must never fabricate an order")
}

func TestOrderPaidMarksCommissionPayable(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID: 3002, TotalPrice: "100.00", Tags: "partner_progolf_miami",
	})
	require.NoError(t, err)

	_, err = svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersPaid, shopify.OrderPayload{ID: 3002})
	require.NoError(t, err)

	order, err := orders.FindByShopifyId(context.Background(), "3002")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusPaid, order.OrderStatus)
	assert.Equal(t, domain.CommissionPending, order.CommissionStatus)
}

func TestOrderCancelledZeroesCommission(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID: 4001, TotalPrice: "100.00", Tags: "partner_progolf_miami",
	})
	require.NoError(t, err)

	_, err = svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCancelled, shopify.OrderPayload{ID: 4001})
	require.NoError(t, err)

	order, err := orders.FindByShopifyId(context.Background(), "4001")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusCancelled, order.OrderStatus)
	assert.True(t, order.CommissionAmount.IsZero(), "cancellation must zero the commission, got %s", order.CommissionAmount)
}

func TestOrderCancelledMissingOrderIsNoOp(t *testing.T) {
	svc, _, orders := setup(t)

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCancelled, shopify.OrderPayload{ID: 4002})
	require.NoError(t, err)
	assert.Equal(t, "Order cancellation processed", ack.Message)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRefundedPartial(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID: 5001, TotalPrice: "100.00", Tags: "partner_progolf_miami",
	})
	require.NoError(t, err)

	_, err = svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersRefunded, shopify.OrderPayload{
		ID: 5001, TotalPrice: "100.00", TotalRefunded: "40.00",
	})
	require.NoError(t, err)

	order, err := orders.FindByShopifyId(context.Background(), "5001")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, dec(t, "60.00").Equal(order.TotalAmount), "total %s", order.TotalAmount)
	assert.True(t, dec(t, "9.00").Equal(order.CommissionAmount), "commission %s", order.CommissionAmount)
	assert.Equal(t, domain.OrderStatusPartiallyRefunded, order.OrderStatus)
}

func TestOrderRefundedFullAndOverRefund(t *testing.T) {
	for _, refunded := range []string{"100.00", "150.00"} {
		partner := newTestPartner(t, "15", "partner_progolf_miami")
		svc, _, orders := setup(t, partner)

		_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
			ID: 5002, TotalPrice: "100.00", Tags: "partner_progolf_miami",
		})
		require.NoError(t, err)

		_, err = svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersRefunded, shopify.OrderPayload{
			ID: 5002, TotalPrice: "100.00", TotalRefunded: refunded,
		})
		require.NoError(t, err)

		order, err := orders.FindByShopifyId(context.Background(), "5002")
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.True(t, order.TotalAmount.IsZero(), "refunded=%s remaining total must clamp to zero, got %s", refunded, order.TotalAmount)
		assert.True(t, order.CommissionAmount.IsZero())
		assert.Equal(t, domain.OrderStatusRefunded, order.OrderStatus)
	}
}

func TestOrderRefundedMissingOrderIsNoOp(t *testing.T) {
	svc, _, _ := setup(t)

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersRefunded, shopify.OrderPayload{
		ID: 5003, TotalPrice: "100.00", TotalRefunded: "100.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Order refund processed", ack.Message)
}

func TestOrderRefundedMissingPartnerIsNoOp(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, partners, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID: 5004, TotalPrice: "100.00", Tags: "partner_progolf_miami",
	})
	require.NoError(t, err)

	// Partner record disappears between create and refund.
	partners.partners = nil

	ack, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersRefunded, shopify.OrderPayload{
		ID: 5004, TotalPrice: "100.00", TotalRefunded: "40.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Order refund processed", ack.Message)

	order, err := orders.FindByShopifyId(context.Background(), "5004")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, dec(t, "100.00").Equal(order.TotalAmount), "order must stay untouched without its partner")
}

func TestUnrecognizedTopicIsAcknowledged(t *testing.T) {
	svc, _, orders := setup(t)

	ack, err := svc.HandleOrderEvent(context.Background(), "orders/fulfilled", shopify.OrderPayload{ID: 6001})
	require.NoError(t, err)
	assert.Equal(t, "Webhook received but not processed", ack.Message)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMissingOrderIDIsRejected(t *testing.T) {
	svc, _, _ := setup(t)

	for _, topic := range []string{
		shopify.TopicOrdersCreate,
		shopify.TopicOrdersPaid,
		shopify.TopicOrdersCancelled,
		shopify.TopicOrdersRefunded,
	} {
		_, err := svc.HandleOrderEvent(context.Background(), topic, shopify.OrderPayload{})
		assert.ErrorIs(t, err, domain.ErrMissingOrderID, "topic %s", topic)
	}
}

func TestUnrecognizedTopicWithoutOrderIDIsAcknowledged(t *testing.T) {
	svc, _, orders := setup(t)

	// An app/uninstalled delivery carries no order id at all; it must still
	// be acked, not bounced as a malformed order event.
	ack, err := svc.HandleOrderEvent(context.Background(), "app/uninstalled", shopify.OrderPayload{})
	require.NoError(t, err)
	assert.Equal(t, "Webhook received but not processed", ack.Message)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMalformedAmountIsRejected(t *testing.T) {
	partner := newTestPartner(t, "15", "partner_progolf_miami")
	svc, _, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID: 7001, TotalPrice: "not-a-number", Tags: "partner_progolf_miami",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	all, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAttributionByPartnerPrimaryId(t *testing.T) {
	partner := newTestPartner(t, "12.50", "")
	svc, _, orders := setup(t, partner)

	_, err := svc.HandleOrderEvent(context.Background(), shopify.TopicOrdersCreate, shopify.OrderPayload{
		ID:             8001,
		TotalPrice:     "80.00",
		NoteAttributes: []shopify.NoteAttribute{{Name: "partner_id", Value: partner.ID.String()}},
	})
	require.NoError(t, err)

	order, err := orders.FindByShopifyId(context.Background(), "8001")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, partner.ID, order.PartnerID.UUID)
	assert.True(t, dec(t, "10.00").Equal(order.CommissionAmount))
}
