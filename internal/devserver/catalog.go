package devserver

import (
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// productInput accepts partial product records; omitted fields keep their
// defaults on create and their previous values on update.
type productInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"categoryId"`
	InStock     *bool    `json:"inStock"`
	Quantity    *int     `json:"quantity"`
	Images      []string `json:"images"`
}

func (in *productInput) apply(p *models.Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Images != nil {
		p.Images = in.Images
	}
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.store.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.store.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload"})
		return
	}
	if in.Name == nil || *in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product name is required"})
		return
	}
	if in.Price != nil && *in.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be non-negative"})
		return
	}

	product := models.Product{ID: uuid.New().String(), InStock: true, Images: []string{}}
	in.apply(&product)

	if err := s.store.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload"})
		return
	}
	if in.Price != nil && *in.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be non-negative"})
		return
	}

	product, err := s.store.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	in.apply(product)

	if err := s.store.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type categoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (in *categoryInput) apply(cat *models.Category) {
	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.store.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c *gin.Context) {
	category, err := s.store.CategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) createCategory(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category payload"})
		return
	}
	if in.Name == nil || *in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	category := models.Category{ID: uuid.New().String()}
	in.apply(&category)

	if err := s.store.CreateCategory(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category payload"})
		return
	}

	category, err := s.store.CategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	in.apply(category)

	if err := s.store.UpdateCategory(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
