package http

import (
	"github.com/shopspring/decimal"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/pagination"
)

type productView struct {
	domain.Product
	FormattedPrice         string `json:"formattedPrice"`
	FormattedOriginalPrice string `json:"formattedOriginalPrice,omitempty"`
	DiscountPercent        int    `json:"discountPercent"`
}

func newProductView(p domain.Product) productView {
	v := productView{
		Product:         p,
		FormattedPrice:  domain.FormatPrice(p.Price),
		DiscountPercent: p.DiscountPercent(),
	}
	if p.OriginalPrice != nil {
		v.FormattedOriginalPrice = domain.FormatPrice(*p.OriginalPrice)
	}
	return v
}

func newProductViews(ps []domain.Product) []productView {
	out := make([]productView, len(ps))
	for i, p := range ps {
		out[i] = newProductView(p)
	}
	return out
}

type productListView struct {
	pagination.Result[productView]
	Category     string `json:"category"`
	Query        string `json:"query"`
	ResultsLabel string `json:"resultsLabel"`
	SectionTitle string `json:"sectionTitle"`
}

type lineView struct {
	domain.CartLine
	Subtotal          decimal.Decimal `json:"subtotal"`
	FormattedPrice    string          `json:"formattedPrice"`
	FormattedSubtotal string          `json:"formattedSubtotal"`
	DiscountPercent   int             `json:"discountPercent"`
}

type cartView struct {
	Lines          []lineView      `json:"lines"`
	Count          int             `json:"count"`
	Badge          string          `json:"badge"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
}

func newCartView(c *store.CartStore) cartView {
	lines := c.Lines()
	views := make([]lineView, len(lines))
	for i, l := range lines {
		sub := l.Subtotal()
		views[i] = lineView{
			CartLine:          l,
			Subtotal:          sub,
			FormattedPrice:    domain.FormatPrice(l.Price),
			FormattedSubtotal: domain.FormatPrice(sub),
			DiscountPercent:   l.DiscountPercent(),
		}
	}
	total := lines.Total()
	return cartView{
		Lines:          views,
		Count:          lines.Count(),
		Badge:          domain.CountBadge(lines.Count()),
		Total:          total,
		FormattedTotal: domain.FormatPrice(total),
	}
}

type wishlistView struct {
	ProductIDs []string      `json:"productIds"`
	Products   []productView `json:"products"`
	Count      int           `json:"count"`
	Badge      string        `json:"badge"`
}

func newWishlistView(w *store.WishlistStore, lookup store.ProductLookup) wishlistView {
	ids := w.List()
	return wishlistView{
		ProductIDs: ids,
		Products:   newProductViews(w.Products(lookup)),
		Count:      len(ids),
		Badge:      domain.CountBadge(len(ids)),
	}
}

type toggleView struct {
	ProductID  string       `json:"productId"`
	InWishlist bool         `json:"inWishlist"`
	Wishlist   wishlistView `json:"wishlist"`
}

type sessionView struct {
	Authenticated bool            `json:"authenticated"`
	User          *domain.Session `json:"user"`
	Greeting      string          `json:"greeting"`
}

func newSessionView(s *store.SessionStore) sessionView {
	v := sessionView{Greeting: s.Greeting()}
	if sess, ok := s.CurrentUser(); ok {
		v.Authenticated = true
		v.User = &sess
	}
	return v
}
