package shopify

import "strings"

// OrderPayload is the subset of a Shopify order webhook body the pipeline
// reads. Monetary fields arrive as string-encoded decimals and are parsed
// at the service boundary.
type OrderPayload struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	TotalPrice      string          `json:"total_price"`
	TotalRefunded   string          `json:"total_refunded"`
	FinancialStatus string          `json:"financial_status"`
	Tags            string          `json:"tags"`
	NoteAttributes  []NoteAttribute `json:"note_attributes"`
	DiscountCodes   []DiscountCode  `json:"discount_codes"`
}

type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type DiscountCode struct {
	Code string `json:"code"`
}

const tagPrefix = "partner_"

// ExtractPartner derives a partner identifier from the out-of-band signals
// Shopify carries on an order: note attributes written by the storefront,
// order tags of the form partner_<identifier>, and finally discount codes
// with the same prefix. Deterministic for identical input, no side effects.
// Absence of attribution is a normal outcome, reported via ok=false.
func ExtractPartner(order OrderPayload) (partnerID string, ok bool) {
	for _, attr := range order.NoteAttributes {
		switch strings.ToLower(attr.Name) {
		case "partner_id", "ref", "referral":
			if v := strings.TrimSpace(attr.Value); v != "" {
				return v, true
			}
		}
	}

	for _, tag := range strings.Split(order.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if rest, found := strings.CutPrefix(tag, tagPrefix); found && rest != "" {
			return rest, true
		}
	}

	for _, dc := range order.DiscountCodes {
		code := strings.TrimSpace(dc.Code)
		if rest, found := strings.CutPrefix(strings.ToLower(code), tagPrefix); found && rest != "" {
			return rest, true
		}
	}

	return "", false
}
