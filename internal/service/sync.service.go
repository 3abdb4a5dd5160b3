package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/infrastructure/shopify"
	"attomax-partners/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SyncService interface {
	// SyncProducts pulls the product catalog from the Shopify Admin API and
	// upserts every entry, returning how many were synced.
	SyncProducts(ctx context.Context) (int, error)
}

type syncService struct {
	products repo.ProductRepo
	shopify  shopify.ProductFetcher
}

func NewSyncService(products repo.ProductRepo, fetcher shopify.ProductFetcher) SyncService {
	return &syncService{products: products, shopify: fetcher}
}

func (s *syncService) SyncProducts(ctx context.Context) (int, error) {
	payloads, err := s.shopify.FetchProducts(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	synced := 0
	for _, p := range payloads {
		price := decimal.Zero
		if len(p.Variants) > 0 {
			if parsed, err := decimal.NewFromString(p.Variants[0].Price); err == nil {
				price = parsed
			}
		}

		status := domain.ProductInactive
		if p.Status == "active" {
			status = domain.ProductActive
		}

		product := &domain.Product{
			ID:               uuid.New(),
			ShopifyProductID: strconv.FormatInt(p.ID, 10),
			Title:            p.Title,
			Description:      p.BodyHTML,
			Price:            price,
			ImageURL:         p.Image.Src,
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.products.Upsert(ctx, product); err != nil {
			return synced, err
		}
		synced++
	}

	log.Printf("Synced %d products from Shopify", synced)
	return synced, nil
}
