package handlers

import (
	"io"
	"net/http"

	"github.com/ankirsydii/Orderly/internal/realtime"

	"github.com/gin-gonic/gin"
)

// StreamHandler exposes the realtime feeds as server-sent events: one full
// collection snapshot per event, newest state wins.
type StreamHandler struct {
	productFeed *realtime.ProductFeed
	orderFeed   *realtime.OrderFeed
}

func NewStreamHandler(productFeed *realtime.ProductFeed, orderFeed *realtime.OrderFeed) *StreamHandler {
	return &StreamHandler{productFeed: productFeed, orderFeed: orderFeed}
}

func (h *StreamHandler) Products(c *gin.Context) {
	ctx := c.Request.Context()
	snapshots, cancel, err := h.productFeed.Subscribe(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("products", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *StreamHandler) Orders(c *gin.Context) {
	ctx := c.Request.Context()
	snapshots, cancel, err := h.orderFeed.Subscribe(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("orders", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
