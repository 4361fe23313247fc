package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type OrderHandler struct {
	Repo   repository.OrderRepository
	Mailer utils.Mailer
}

func NewOrderHandler(repo repository.OrderRepository, mailer utils.Mailer) *OrderHandler {
	return &OrderHandler{Repo: repo, Mailer: mailer}
}

// validateOrderInput enforces the checkout contract before anything is
// written. It returns an empty string when the input is acceptable.
func validateOrderInput(input models.CreateOrderInput) string {
	hasUser := input.User != ""
	hasGuest := input.GuestUser != nil
	if hasUser == hasGuest {
		return "Provide either a user or a guest user, not both"
	}
	if hasGuest {
		g := input.GuestUser
		if g.FirstName == "" || g.LastName == "" || g.Email == "" || g.PhoneNumber == "" {
			return "Guest user details are incomplete"
		}
	}
	if len(input.Items) == 0 {
		return "Order must contain at least one item"
	}
	for _, item := range input.Items {
		if _, err := primitive.ObjectIDFromHex(item.ProductID); err != nil {
			return "Invalid product id in order items"
		}
		if item.Price <= 0 {
			return "Item price must be greater than zero"
		}
		if item.Quantity < 1 {
			return "Item quantity must be at least 1"
		}
	}
	if input.TotalAmount <= 0 {
		return "Total amount must be greater than zero"
	}
	if input.ShippingAddress == "" {
		return "Shipping address is required"
	}
	if input.BillingAddress == "" {
		return "Billing address is required"
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return "Invalid payment method"
	}
	if input.PaymentToken == "" {
		return "Payment token is required"
	}
	return ""
}

// CreateOrder places an order with its payment record. Works for both
// registered users and guests.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input models.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if msg := validateOrderInput(input); msg != "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, msg))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	order, payment, err := h.Repo.CreateOrder(ctx, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while placing the order"))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Order placed successfully!", gin.H{
		"order":   order,
		"payment": payment,
	}))
}

func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid order id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Repo.GetOrderDetails(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching the order"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Order fetched successfully!", gin.H{"order": order}))
}

// GetMyOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	h.respondUserOrders(c, userID)
}

// GetUserOrders lists any user's orders for the admin dashboard.
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid user id"))
		return
	}

	h.respondUserOrders(c, userID)
}

func (h *OrderHandler) respondUserOrders(c *gin.Context, userID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Repo.GetUserOrders(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching orders"))
		return
	}
	if orders == nil {
		orders = []models.PopulatedOrder{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Orders fetched successfully!", gin.H{"orders": orders}))
}

func (h *OrderHandler) GetOrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(c.Param("status"))
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid order status"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Repo.GetOrdersByStatus(ctx, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching orders"))
		return
	}
	if orders == nil {
		orders = []models.PopulatedOrder{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Orders fetched successfully!", gin.H{"orders": orders}))
}

// UpdateOrderStatus sets a new status. Cancelling requires a message for
// the customer. The notification email is best effort; a failed send is
// logged and the update still succeeds.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid order id"))
		return
	}

	var input models.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Order status is required"))
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid order status"))
		return
	}
	if input.Status == models.StatusCancelled && input.Message == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "A cancellation message is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Repo.UpdateStatus(ctx, orderID, input.Status, input.Message)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the order"))
		return
	}

	h.notifyStatusChange(ctx, orderID, input.Status, input.Message)

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Order status updated successfully!", gin.H{"order": order}))
}

func (h *OrderHandler) notifyStatusChange(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, message string) {
	detail, err := h.Repo.GetOrderDetails(ctx, orderID)
	if err != nil {
		logrus.WithError(err).WithField("orderId", orderID.Hex()).Warn("Failed to load order for status email")
		return
	}
	email := detail.Email()
	if email == "" {
		return
	}

	body := fmt.Sprintf(`
	<h2>Order Update</h2>
	<p>Your order <b>%s</b> is now <b>%s</b>.</p>
	`, orderID.Hex(), status)
	if status == models.StatusCancelled && message != "" {
		body += fmt.Sprintf("<p>%s</p>", message)
	}

	result := h.Mailer.Send(utils.Mail{
		To:      email,
		Subject: fmt.Sprintf("Your order is %s", status),
		HTML:    body,
	})
	if !result.Success {
		logrus.WithField("orderId", orderID.Hex()).Warn("Failed to send order status email")
	}
}
