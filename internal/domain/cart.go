package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product in the cart. Title, price, original price and
// image are copied from the product when the line is created.
type CartLine struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Quantity      int              `json:"quantity"`
	AddedAt       time.Time        `json:"addedAt"`
}

// NewCartLine snapshots p into a line with quantity 1.
func NewCartLine(p Product, now time.Time) CartLine {
	line := CartLine{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
		AddedAt:  now.UTC(),
	}
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		line.OriginalPrice = &orig
	}
	return line
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) DiscountPercent() int {
	return DiscountPercent(l.OriginalPrice, l.Price)
}

// Lines is an ordered cart with at most one line per product ID.
type Lines []CartLine

// Total sums Subtotal over all lines.
func (ls Lines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range ls {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count sums quantities.
func (ls Lines) Count() int {
	n := 0
	for _, l := range ls {
		n += l.Quantity
	}
	return n
}

type storedLine struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Price         json.Number  `json:"price"`
	OriginalPrice *json.Number `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
	Quantity      int          `json:"quantity"`
	AddedAt       time.Time    `json:"addedAt"`
}

// MarshalJSON writes prices as JSON numbers, matching what the browser
// front-end keeps under the cart key. A nil cart encodes as [].
func (ls Lines) MarshalJSON() ([]byte, error) {
	out := make([]storedLine, len(ls))
	for i, l := range ls {
		out[i] = storedLine{
			ID:       l.ID,
			Title:    l.Title,
			Price:    json.Number(l.Price.String()),
			Image:    l.Image,
			Quantity: l.Quantity,
			AddedAt:  l.AddedAt,
		}
		if l.OriginalPrice != nil {
			orig := json.Number(l.OriginalPrice.String())
			out[i].OriginalPrice = &orig
		}
	}
	return json.Marshal(out)
}

// Index returns the position of the line for id, or -1.
func (ls Lines) Index(id string) int {
	for i := range ls {
		if ls[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (ls Lines) Clone() Lines {
	out := make(Lines, len(ls))
	for i, l := range ls {
		if l.OriginalPrice != nil {
			orig := *l.OriginalPrice
			l.OriginalPrice = &orig
		}
		out[i] = l
	}
	return out
}

// Valid reports whether every line has an ID, a positive quantity and a
// non-negative price, and no ID repeats.
func (ls Lines) Valid() bool {
	seen := make(map[string]struct{}, len(ls))
	for _, l := range ls {
		if l.ID == "" || l.Quantity < 1 || l.Price.IsNegative() {
			return false
		}
		if _, dup := seen[l.ID]; dup {
			return false
		}
		seen[l.ID] = struct{}{}
	}
	return true
}

// CountBadge is the header badge text: empty for zero, "99+" above 99.
func CountBadge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 99:
		return "99+"
	default:
		return strconv.Itoa(n)
	}
}
