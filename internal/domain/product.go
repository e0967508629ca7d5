package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices encode as JSON decimal strings and
// decode from either strings or numbers.
type Product struct {
	ID            string           `json:"id" validate:"required"`
	Title         string           `json:"title" validate:"required"`
	Description   string           `json:"description"`
	Category      string           `json:"category" validate:"required"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating" validate:"gte=0,lte=5"`
	Reviews       int              `json:"reviews" validate:"gte=0"`
	InStock       bool             `json:"inStock"`
	FastDelivery  bool             `json:"fastDelivery"`
}

// CheckPrices reports a negative price or an original price below the
// selling price.
func (p Product) CheckPrices() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("product %s: price must not be negative", p.ID)
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		return fmt.Errorf("product %s: original price %s is below price %s", p.ID, p.OriginalPrice, p.Price)
	}
	return nil
}

// DiscountPercent returns round((original - price) / original * 100), or 0
// when there is no positive original price.
func (p Product) DiscountPercent() int {
	return DiscountPercent(p.OriginalPrice, p.Price)
}

// DiscountPercent is the discount of price relative to original.
func DiscountPercent(original *decimal.Decimal, price decimal.Decimal) int {
	if original == nil || !original.IsPositive() {
		return 0
	}
	pct := original.Sub(price).Div(*original).Mul(decimal.NewFromInt(100)).Round(0)
	if pct.IsNegative() {
		return 0
	}
	return int(pct.IntPart())
}

// FormatPrice renders an amount as dollars with two decimals, e.g. "$79.99".
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
