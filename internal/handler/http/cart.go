package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/catalog"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httputil"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/validator"
)

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
}

// UpdateQuantityRequest is the body of PUT /api/v1/cart/items/{productId}.
// A quantity of 0 removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=100"`
}

// CartHandler serves the profile's cart.
type CartHandler struct {
	stores  *store.Factory
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewCartHandler(stores *store.Factory, c *catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{stores: stores, catalog: c, logger: logger}
}

func (h *CartHandler) cart(w http.ResponseWriter, r *http.Request) (*store.CartStore, bool) {
	c, err := h.stores.Cart(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return c, true
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	httputil.WriteData(w, newCartView(c))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	if err := c.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newCartView(c))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.Purchasable(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	if err := c.AddToCart(r.Context(), &p); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newCartView(c))
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	if err := c.SetQuantity(r.Context(), chi.URLParam(r, "productId"), *req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newCartView(c))
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	if err := c.RemoveFromCart(r.Context(), chi.URLParam(r, "productId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newCartView(c))
}
