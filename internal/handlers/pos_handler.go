package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ankirsydii/Orderly/internal/cart"
	"github.com/ankirsydii/Orderly/internal/services"

	"github.com/gin-gonic/gin"
)

// CartStore keeps each session's cart between requests.
type CartStore interface {
	GetCart(token string) (*cart.Cart, error)
	SetCart(token string, crt *cart.Cart, ttl time.Duration) error
	DeleteCart(token string) error
}

// PosHandler is the cashier surface: browse the menu, build a cart, take
// payment.
type PosHandler struct {
	carts           CartStore
	catalogService  services.CatalogService
	checkoutService services.CheckoutService
	cartTTL         time.Duration
}

func NewPosHandler(
	carts CartStore,
	catalogService services.CatalogService,
	checkoutService services.CheckoutService,
	cartTTL time.Duration,
) *PosHandler {
	return &PosHandler{
		carts:           carts,
		catalogService:  catalogService,
		checkoutService: checkoutService,
		cartTTL:         cartTTL,
	}
}

func (h *PosHandler) GetCart(c *gin.Context) {
	crt, err := h.carts.GetCart(currentToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": crt.Lines, "total": crt.Total()})
}

func (h *PosHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if !product.IsAvailable {
		c.JSON(http.StatusConflict, gin.H{"error": "menu item is not available"})
		return
	}

	token := currentToken(c)
	crt, err := h.carts.GetCart(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	crt.Add(*product)
	if err := h.carts.SetCart(token, crt, h.cartTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": crt.Lines, "total": crt.Total()})
}

func (h *PosHandler) RemoveItem(c *gin.Context) {
	token := currentToken(c)
	crt, err := h.carts.GetCart(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	crt.Remove(c.Param("product_id"))
	if err := h.carts.SetCart(token, crt, h.cartTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": crt.Lines, "total": crt.Total()})
}

func (h *PosHandler) ClearCart(c *gin.Context) {
	if err := h.carts.DeleteCart(currentToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Checkout takes the cash amount as free-form text, exactly as typed into
// the payment dialog. On a store failure the cart stays in the session so
// the cashier can retry.
func (h *PosHandler) Checkout(c *gin.Context) {
	var req struct {
		Cash string `json:"cash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session := CurrentSession(c)
	token := currentToken(c)

	crt, err := h.carts.GetCart(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	checkout, err := h.checkoutService.Begin(crt, session.FullName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkout.EnterCash(req.Cash)

	order, err := h.checkoutService.Submit(checkout)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCash) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    err.Error(),
				"total":    checkout.Total(),
				"short_by": -checkout.ChangeDue(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The order is committed; if the cart key fails to delete it only
	// lives until its TTL.
	_ = h.carts.DeleteCart(token)

	c.JSON(http.StatusCreated, gin.H{"order": order, "change_due": checkout.ChangeDue()})
}

func (h *PosHandler) ListOrders(c *gin.Context) {
	orders, err := h.checkoutService.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}
