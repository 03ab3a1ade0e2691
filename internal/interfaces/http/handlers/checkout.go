// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/checkout"
	"github.com/your-org/jewelry-storefront/internal/domain/payment"
)

// CheckoutHandler handles checkout and payment endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	paymentService  *payment.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, paymentService *payment.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		paymentService:  paymentService,
		config:          cfg,
	}
}

func (h *CheckoutHandler) sessionID(c *gin.Context) (string, bool) {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No active shopping session",
		})
		return "", false
	}
	return sessionID, true
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	summary, err := h.checkoutService.Summary(c.Request.Context(), sessionID, c.Query("state"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute checkout summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data":    summary,
	})
}

// CreateOrderRequest represents a payment order creation request
type CreateOrderRequest struct {
	State string `json:"state"`
}

// CreateOrder handles POST /checkout/orders. The charge amount is recomputed
// from the live cart and catalog at request time, never taken from the client.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data: " + err.Error(),
		})
		return
	}

	summary, err := h.checkoutService.Summary(c.Request.Context(), sessionID, req.State)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute checkout summary",
		})
		return
	}
	if len(summary.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), summary.Totals.AmountString())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to create payment order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment order created",
		"data": gin.H{
			"order":   order,
			"summary": summary,
		},
	})
}

// CaptureOrder handles POST /checkout/orders/:id/capture. The cart is cleared
// only on a confirmed COMPLETED capture; any other outcome preserves it so the
// shopper can retry.
func (h *CheckoutHandler) CaptureOrder(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.CaptureOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment capture failed",
		})
		return
	}

	if result.Status != payment.StatusCompleted {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment not completed",
			"data":  result,
		})
		return
	}

	// Payment is captured at this point; a cart cleanup failure must not
	// fail the order
	_ = h.checkoutService.ConfirmOrder(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment completed",
		"data":    result,
	})
}

// CancelOrder handles POST /checkout/orders/:id/cancel. Cancellation leaves
// the cart untouched.
func (h *CheckoutHandler) CancelOrder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment cancelled",
		"data": gin.H{
			"order_id": c.Param("id"),
		},
	})
}
