// Package catalog holds the read-only product list and the filtering
// helpers the storefront renders from.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/validator"
)

// ErrOutOfStock is wrapped by Purchasable for products that cannot be
// added to a cart.
var ErrOutOfStock = errors.New("product is out of stock")

//go:embed seed.json
var seedJSON []byte

// Document is the on-disk and over-the-wire catalog format. Categories is
// the navigation list; when empty it is derived from the products.
type Document struct {
	Categories []string         `json:"categories"`
	Products   []domain.Product `json:"products"`
}

// Catalog is an ordered, immutable product list.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
}

// New validates doc and builds a Catalog from it.
func New(doc Document) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(doc.Products),
		byID:     make(map[string]int, len(doc.Products)),
	}

	for i, p := range c.products {
		if err := validator.Validate(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if err := p.CheckPrices(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = i
	}

	c.categories = slices.Clone(doc.Categories)
	if len(c.categories) == 0 {
		c.categories = DistinctCategories(c.products)
	}
	return c, nil
}

// Parse decodes a Document from JSON and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc)
}

// Seed returns the built-in demo catalog.
func Seed() (*Catalog, error) {
	return Parse(seedJSON)
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// JSONFetcher downloads and decodes a JSON document.
type JSONFetcher interface {
	GetJSON(ctx context.Context, url string, dst any) error
}

// LoadURL fetches a catalog document from url.
func LoadURL(ctx context.Context, f JSONFetcher, url string) (*Catalog, error) {
	var doc Document
	if err := f.GetJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return New(doc)
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

// Product looks up a product by ID.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Purchasable returns the product for id if it exists and is in stock.
func (c *Catalog) Purchasable(id string) (domain.Product, error) {
	p, ok := c.Product(id)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	if !p.InStock {
		return domain.Product{}, &apperrors.AppError{
			Code:    "OUT_OF_STOCK",
			Message: fmt.Sprintf("product %s is out of stock", id),
			Status:  http.StatusConflict,
			Err:     ErrOutOfStock,
		}
	}
	return p, nil
}

// Categories returns the navigation categories.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Filter is Filter applied to the whole catalog.
func (c *Catalog) Filter(category, query string) []domain.Product {
	return Filter(c.products, category, query)
}
