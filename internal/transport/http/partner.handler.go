package http

import (
	"errors"
	"net/http"
	"time"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PartnerHandler struct {
	svc service.PartnerService
}

func NewPartnerHandler(svc service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

type createPartnerRequest struct {
	Name           string           `json:"name" binding:"required"`
	Email          string           `json:"email" binding:"required,email"`
	Domain         string           `json:"domain"`
	LogoURL        string           `json:"logoUrl"`
	BrandName      string           `json:"brandName"`
	CommissionRate *decimal.Decimal `json:"commissionRate" binding:"required"`
	Status         string           `json:"status"`
	ShopifyTag     string           `json:"shopifyTag"`
}

type partnerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Domain         string    `json:"domain,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	BrandName      string    `json:"brandName,omitempty"`
	CommissionRate string    `json:"commissionRate"`
	Status         string    `json:"status"`
	ShopifyTag     string    `json:"shopifyTag,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toPartnerResponse(p domain.Partner) partnerResponse {
	return partnerResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Email:          p.Email,
		Domain:         p.Domain,
		LogoURL:        p.LogoURL,
		BrandName:      p.BrandName,
		CommissionRate: p.CommissionRate.StringFixed(2),
		Status:         string(p.Status),
		ShopifyTag:     p.ShopifyTag,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var req createPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and commission rate are required"})
		return
	}

	partner, err := h.svc.CreatePartner(c.Request.Context(), service.CreatePartnerInput{
		Name:           req.Name,
		Email:          req.Email,
		Domain:         req.Domain,
		LogoURL:        req.LogoURL,
		BrandName:      req.BrandName,
		CommissionRate: *req.CommissionRate,
		Status:         req.Status,
		ShopifyTag:     req.ShopifyTag,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPartnerEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		case errors.Is(err, domain.ErrNameRequired),
			errors.Is(err, domain.ErrEmailRequired),
			errors.Is(err, domain.ErrInvalidRate),
			errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Partner created successfully",
		"partner": toPartnerResponse(*partner),
	})
}

func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.svc.ListPartners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	resp := make([]partnerResponse, 0, len(partners))
	for _, p := range partners {
		resp = append(resp, toPartnerResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"partners": resp})
}

func (h *PartnerHandler) Get(c *gin.Context) {
	partner, err := h.svc.GetPartner(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePartnerLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": toPartnerResponse(*partner)})
}

func (h *PartnerHandler) Stats(c *gin.Context) {
	stats, err := h.svc.PartnerStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePartnerLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalOrders":       stats.TotalOrders,
		"totalRevenue":      stats.TotalRevenue.StringFixed(2),
		"totalCommission":   stats.TotalCommission.StringFixed(2),
		"pendingCommission": stats.PendingCommission.StringFixed(2),
	})
}

func writePartnerLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPartnerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
