package devserver

import (
	"net/http"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// createOrder derives an order from the caller's server-side cart. The
// request carries no payload; items and the total come from the cart
// rows, priced at the moment of creation, and the cart is cleared.
func (s *Server) createOrder(c *gin.Context) {
	ctx, span := util.StartSpan(c.Request.Context(), "devserver.createOrder")
	defer span.End()

	account := currentAccount(c)

	lines, err := s.store.CartLines(ctx, account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load cart"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:         uuid.New().String(),
		CustomerID: account.ID,
		Status:     models.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, line := range lines {
		product, err := s.store.ProductByID(ctx, line.ProductID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"message": "A cart item is no longer available"})
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		order.TotalAmount += product.Price * float64(line.Quantity)
	}

	if err := s.store.CreateOrder(ctx, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}
	if err := s.store.ClearCart(ctx, account.ID); err != nil {
		s.logger.Warn("Failed to clear cart after order creation",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	s.events.OrderPlaced(ctx, &order)
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.TotalAmount))

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listMyOrders(c *gin.Context) {
	orders, err := s.store.OrdersByCustomer(c.Request.Context(), currentAccount(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.store.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	account := currentAccount(c)
	if order.CustomerID != account.ID && account.Role != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	order, err := s.store.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil || order.CustomerID != currentAccount(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending orders can be cancelled"})
		return
	}

	if err := s.store.UpdateOrderStatus(c.Request.Context(), order.ID, models.OrderStatusCancelled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
		return
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	s.events.OrderCancelled(c.Request.Context(), order)

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown order status"})
		return
	}

	order, err := s.store.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	oldStatus := order.Status
	if err := s.store.UpdateOrderStatus(c.Request.Context(), order.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	order.Status = req.Status
	order.UpdatedAt = time.Now()
	s.events.OrderStatusChanged(c.Request.Context(), order.ID, oldStatus, req.Status)

	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
