package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiVersion = "2024-01"

// ProductPayload is a product as returned by the Shopify Admin API.
type ProductPayload struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Status   string           `json:"status"`
	Variants []ProductVariant `json:"variants"`
	Image    ProductImage     `json:"image"`
}

type ProductVariant struct {
	Price string `json:"price"`
}

type ProductImage struct {
	Src string `json:"src"`
}

// ProductFetcher is the catalog-sync contract the rest of the service
// depends on.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]ProductPayload, error)
}

// Client talks to the Shopify Admin REST API for one shop.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(shopDomain, accessToken string) *Client {
	return &Client{
		baseURL:     "https://" + shopDomain,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]ProductPayload, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products.json?limit=250", c.baseURL, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: shopify returned %s", resp.Status)
	}

	var body struct {
		Products []ProductPayload `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}
	return body.Products, nil
}
