package devserver

import (
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/gin-gonic/gin"
)

// cartItem joins a stored cart line with its product's display fields,
// matching what the storefront expects from the cart endpoints.
func (s *Server) cartItem(c *gin.Context, line store.CartLine) (models.CartItem, bool) {
	product, err := s.store.ProductByID(c.Request.Context(), line.ProductID)
	if err != nil {
		return models.CartItem{}, false
	}
	return models.CartItem{
		ID:        line.ID,
		ProductID: line.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Images:    product.Images,
		Quantity:  line.Quantity,
	}, true
}

func (s *Server) cartItems(c *gin.Context) {
	lines, err := s.store.CartLines(c.Request.Context(), currentAccount(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load cart"})
		return
	}

	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		if item, ok := s.cartItem(c, line); ok {
			items = append(items, item)
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart payload", "details": err.Error()})
		return
	}

	if _, err := s.store.ProductByID(c.Request.Context(), req.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	line, err := s.store.UpsertCartLine(c.Request.Context(), currentAccount(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}

	item, ok := s.cartItem(c, *line)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be at least 1"})
		return
	}

	line, err := s.store.CartLineByID(c.Request.Context(), c.Param("id"))
	if err != nil || line.AccountID != currentAccount(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	if err := s.store.UpdateCartLineQuantity(c.Request.Context(), line.ID, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
}

func (s *Server) deleteCartItem(c *gin.Context) {
	line, err := s.store.CartLineByID(c.Request.Context(), c.Param("id"))
	if err != nil || line.AccountID != currentAccount(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	if err := s.store.DeleteCartLine(c.Request.Context(), line.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

func (s *Server) clearCart(c *gin.Context) {
	if err := s.store.ClearCart(c.Request.Context(), currentAccount(c).ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
