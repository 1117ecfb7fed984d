package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"poshak-storefront/internal/cart"
	"poshak-storefront/internal/order"
)

var quantityTooLarge = fmt.Sprintf("quantity must be at most %d", cart.MaxQuantity)

type notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func noticeFor(e cart.Event) notice {
	switch e.Kind {
	case cart.EventAdded:
		return notice{"Added to Cart", e.Item.ProductName + " has been added to your cart."}
	case cart.EventQuantityUpdated:
		return notice{"Cart Updated", e.Item.ProductName + " quantity updated in cart."}
	default:
		return notice{"Item Removed", "Item has been removed from your cart."}
	}
}

type cartView struct {
	ID         string          `json:"id"`
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice float64         `json:"totalPrice"`
	Notices    []notice        `json:"notices,omitempty"`
}

func snapshot(id string, l *cart.Ledger) cartView {
	return cartView{
		ID:         id,
		Items:      l.Items(),
		TotalItems: l.TotalItemCount(),
		TotalPrice: l.TotalPrice(),
	}
}

func withNotices(v cartView, events []cart.Event) cartView {
	for _, e := range events {
		v.Notices = append(v.Notices, noticeFor(e))
	}
	return v
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) createCart(c *gin.Context) {
	s := h.carts.Create()
	var v cartView
	s.Do(func(l *cart.Ledger) { v = snapshot(s.ID, l) })
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) getCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var v cartView
	s.Do(func(l *cart.Ledger) { v = snapshot(s.ID, l) })
	c.JSON(http.StatusOK, v)
}

func (h *Handler) deleteCart(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	h.carts.Delete(c.Param("cartId"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) addCartItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.Size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Size Required", "notice": "Please select a size first!"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
		return
	}
	if req.Quantity > cart.MaxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": quantityTooLarge})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	p, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		h.productError(c, err)
		return
	}
	variant, found := p.Variant(req.Size)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size not offered for this product"})
		return
	}

	var v cartView
	events := s.Do(func(l *cart.Ledger) {
		l.AddItem(p.ID, p.Name, variant.Size, req.Quantity, variant.Price, p.Thumbnail())
		v = snapshot(s.ID, l)
	})
	c.JSON(http.StatusOK, withNotices(v, events))
}

func (h *Handler) updateCartItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if req.Quantity > cart.MaxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": quantityTooLarge})
		return
	}

	itemID := c.Param("itemId")
	var (
		v     cartView
		found bool
	)
	s.Do(func(l *cart.Ledger) {
		if _, found = l.Item(itemID); found {
			l.UpdateQuantity(itemID, req.Quantity)
		}
		v = snapshot(s.ID, l)
	})
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var v cartView
	events := s.Do(func(l *cart.Ledger) {
		l.RemoveItem(c.Param("itemId"))
		v = snapshot(s.ID, l)
	})
	c.JSON(http.StatusOK, withNotices(v, events))
}

func (h *Handler) clearCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var v cartView
	s.Do(func(l *cart.Ledger) {
		l.Clear()
		v = snapshot(s.ID, l)
	})
	c.JSON(http.StatusOK, v)
}

// checkout renders the order message and the WhatsApp link that delivers it.
// The cart is left intact.
func (h *Handler) checkout(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var items []cart.LineItem
	s.Do(func(l *cart.Ledger) { items = l.Items() })
	if len(items) == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cart is empty",
			"notice": "Add some products to your cart first.",
		})
		return
	}

	message := h.composer.Compose(items)
	resp := gin.H{
		"message": message,
		"total":   cart.Total(items),
	}
	if h.whatsappPhone != "" {
		resp["whatsappUrl"] = order.WhatsAppLink(h.whatsappPhone, message)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) session(c *gin.Context) (*cart.Session, bool) {
	s, err := h.carts.Get(c.Param("cartId"))
	if err != nil {
		if errors.Is(err, cart.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return nil, false
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	return s, true
}
