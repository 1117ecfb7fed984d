package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poshak-storefront/internal/catalog"
	"poshak-storefront/internal/storage"
)

// productView is a catalog product as the storefront shows it under the
// active price bracket.
type productView struct {
	catalog.Product
	AvailableSizes []catalog.Variant `json:"availableSizes"`
	DisplayPrice   float64           `json:"displayPrice"`
}

func newProductView(p catalog.Product, b catalog.PriceBracket) productView {
	return productView{
		Product:        p,
		AvailableSizes: catalog.VariantsInBracket(p, b),
		DisplayPrice:   catalog.ResolvePrice(p, "", b),
	}
}

func newProductViews(ps []catalog.Product, b catalog.PriceBracket) []productView {
	views := make([]productView, len(ps))
	for i, p := range ps {
		views[i] = newProductView(p, b)
	}
	return views
}

type productPayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Sizes       []catalog.Variant `json:"sizes"`
	Images      []string          `json:"images"`
	Featured    bool              `json:"featured"`
}

func (p productPayload) toProduct() catalog.Product {
	return catalog.Product{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Category:    strings.TrimSpace(p.Category),
		Sizes:       p.Sizes,
		Images:      p.Images,
		Featured:    p.Featured,
	}
}

// mergeInto applies a partial update: empty fields keep the stored value,
// featured is always taken from the payload.
func (p productPayload) mergeInto(dst catalog.Product) catalog.Product {
	if v := strings.TrimSpace(p.Name); v != "" {
		dst.Name = v
	}
	if v := strings.TrimSpace(p.Description); v != "" {
		dst.Description = v
	}
	if v := strings.TrimSpace(p.Category); v != "" {
		dst.Category = v
	}
	if len(p.Sizes) > 0 {
		dst.Sizes = p.Sizes
	}
	if p.Images != nil {
		dst.Images = p.Images
	}
	dst.Featured = p.Featured
	return dst
}

func (h *Handler) listProducts(c *gin.Context) {
	var crit catalog.Criteria
	if err := c.ShouldBindQuery(&crit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	crit = crit.Normalize()

	ps, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newProductViews(catalog.Filter(ps, crit), crit.Price))
}

func (h *Handler) featuredProducts(c *gin.Context) {
	ps, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newProductViews(catalog.Featured(ps, h.featuredLimit), catalog.BracketAll))
}

func (h *Handler) productFacets(c *gin.Context) {
	ps, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories(ps),
		"sizes":      catalog.Sizes(ps),
		"priceRanges": []catalog.PriceBracket{
			catalog.BracketAll,
			catalog.BracketUnder1500,
			catalog.Bracket1500To3000,
			catalog.BracketOver3000,
		},
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	p, err := h.products.Get(ctx, c.Param("id"))
	if err != nil {
		h.productError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	p := req.toProduct()
	if err := p.Validate(); err != nil {
		h.productError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	created, err := h.products.Create(ctx, p)
	if err != nil {
		h.productError(c, err)
		return
	}
	zap.L().Info("product created",
		zap.String("product", created.ID),
		zap.String("admin", c.GetString(adminIDKey)))
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	id := c.Param("id")
	stored, err := h.products.Get(ctx, id)
	if err != nil {
		h.productError(c, err)
		return
	}
	merged := req.mergeInto(stored)
	if err := merged.Validate(); err != nil {
		h.productError(c, err)
		return
	}

	updated, err := h.products.Update(ctx, id, merged)
	if err != nil {
		h.productError(c, err)
		return
	}
	zap.L().Info("product updated",
		zap.String("product", updated.ID),
		zap.String("admin", c.GetString(adminIDKey)))
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.products.Delete(ctx, c.Param("id")); err != nil {
		h.productError(c, err)
		return
	}
	zap.L().Info("product removed",
		zap.String("product", c.Param("id")),
		zap.String("admin", c.GetString(adminIDKey)))
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

func (h *Handler) loadCatalog(c *gin.Context) ([]catalog.Product, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	ps, err := h.products.List(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return nil, false
	}
	return ps, true
}

func (h *Handler) productError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalog.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
