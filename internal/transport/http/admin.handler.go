package http

import (
	"context"
	"net/http"
	"time"

	"attomax-partners/internal/domain"

	"github.com/gin-gonic/gin"
)

// OrderLister and PaymentLister are the minimal read surfaces the admin
// dashboard pages need.
type OrderLister interface {
	List(ctx context.Context) ([]domain.Order, error)
}

type PaymentLister interface {
	List(ctx context.Context) ([]domain.CommissionPayment, error)
}

type AdminHandler struct {
	orders   OrderLister
	payments PaymentLister
}

func NewAdminHandler(orders OrderLister, payments PaymentLister) *AdminHandler {
	return &AdminHandler{orders: orders, payments: payments}
}

type orderResponse struct {
	ID               string    `json:"id"`
	ShopifyOrderID   string    `json:"shopifyOrderId"`
	PartnerID        *string   `json:"partnerId"`
	CustomerEmail    string    `json:"customerEmail"`
	TotalAmount      string    `json:"totalAmount"`
	CommissionAmount string    `json:"commissionAmount"`
	CommissionStatus string    `json:"commissionStatus"`
	OrderStatus      string    `json:"orderStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		var partnerID *string
		if o.PartnerID.Valid {
			id := o.PartnerID.UUID.String()
			partnerID = &id
		}
		resp = append(resp, orderResponse{
			ID:               o.ID.String(),
			ShopifyOrderID:   o.ShopifyOrderID,
			PartnerID:        partnerID,
			CustomerEmail:    o.CustomerEmail,
			TotalAmount:      o.TotalAmount.StringFixed(2),
			CommissionAmount: o.CommissionAmount.StringFixed(2),
			CommissionStatus: string(o.CommissionStatus),
			OrderStatus:      o.OrderStatus,
			CreatedAt:        o.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

type paymentResponse struct {
	ID            string     `json:"id"`
	PartnerID     string     `json:"partnerId"`
	Amount        string     `json:"amount"`
	PeriodStart   time.Time  `json:"periodStart"`
	PeriodEnd     time.Time  `json:"periodEnd"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (h *AdminHandler) ListCommissions(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse{
			ID:            p.ID.String(),
			PartnerID:     p.PartnerID.String(),
			Amount:        p.Amount.StringFixed(2),
			PeriodStart:   p.PeriodStart,
			PeriodEnd:     p.PeriodEnd,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			Status:        string(p.Status),
			CreatedAt:     p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": resp})
}
