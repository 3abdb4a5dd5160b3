package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/infrastructure/shopify"
	"attomax-partners/internal/service"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	svc           service.WebhookService
	webhookSecret string
	production    bool
}

func NewWebhookHandler(svc service.WebhookService, webhookSecret string, production bool) *WebhookHandler {
	return &WebhookHandler{
		svc:           svc,
		webhookSecret: webhookSecret,
		production:    production,
	}
}

// HandleShopifyOrders ingests one Shopify order webhook delivery. The raw
// body is read before decoding because the HMAC is computed over the exact
// bytes Shopify sent.
func (h *WebhookHandler) HandleShopifyOrders(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader(shopify.HeaderHmac)
	topic := c.GetHeader(shopify.HeaderTopic)
	shopDomain := c.GetHeader(shopify.HeaderShopDomain)

	// Verification is deliberately skipped outside production so local
	// development can replay captured payloads without the shop secret.
	if h.production {
		if !shopify.VerifyWebhookSignature(body, signature, h.webhookSecret) {
			log.Printf("Webhook signature verification failed for topic %s", topic)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	var order shopify.OrderPayload
	if err := json.Unmarshal(body, &order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	log.Printf("Received Shopify webhook: %s for order %d from %s", topic, order.ID, shopDomain)

	ack, err := h.svc.HandleOrderEvent(c.Request.Context(), topic, order)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPartnerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		case errors.Is(err, domain.ErrMissingOrderID), errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error processing Shopify webhook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	resp := gin.H{"message": ack.Message}
	if ack.PartnerID != "" {
		resp["partnerId"] = ack.PartnerID
	}
	if ack.CommissionAmount != nil {
		resp["commissionAmount"] = ack.CommissionAmount.StringFixed(2)
	}
	c.JSON(http.StatusOK, resp)
}
