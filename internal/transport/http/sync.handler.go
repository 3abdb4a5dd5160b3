package http

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"attomax-partners/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc        service.SyncService
	adminToken string
}

func NewSyncHandler(svc service.SyncService, adminToken string) *SyncHandler {
	return &SyncHandler{svc: svc, adminToken: adminToken}
}

// SyncProducts triggers a catalog pull from Shopify. Guarded by a static
// bearer token rather than real admin auth.
func (h *SyncHandler) SyncProducts(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	// An empty configured token disables the endpoint entirely; otherwise a
	// bare "Bearer " header would compare equal to it.
	if h.adminToken == "" || !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	log.Printf("Starting Shopify product sync...")

	synced, err := h.svc.SyncProducts(c.Request.Context())
	if err != nil {
		log.Printf("Error syncing Shopify products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Sync failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Sync completed successfully",
		"syncedProducts": synced,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
