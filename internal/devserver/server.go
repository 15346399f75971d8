// Package devserver implements the storefront HTTP API contract for local
// development and tests. The production API lives elsewhere; this server
// exists so the client SDK has a real endpoint to run against.
package devserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/broker"
	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const accountKey = "account"

// Server serves the storefront API backed by a store.
type Server struct {
	store      store.Store
	events     *broker.EventPublisher
	logger     *zap.Logger
	sessionTTL time.Duration
	router     *gin.Engine
}

// New creates a server. events may be nil when Kafka is not configured.
func New(st store.Store, events *broker.EventPublisher, sessionTTL time.Duration) *Server {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	s := &Server{
		store:      st,
		events:     events,
		logger:     util.GetLogger(),
		sessionTTL: sessionTTL,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/logout", s.authRequired, s.logout)
			auth.GET("/profile", s.authRequired, s.profile)
			auth.POST("/change-password", s.authRequired, s.changePassword)
			auth.POST("/forgot-password", s.forgotPassword)
			auth.POST("/reset-password/:token", s.resetPassword)
		}

		api.POST("/users/upload-avatar", s.authRequired, s.uploadAvatar)

		products := api.Group("/products")
		{
			products.GET("/products", s.listProducts)
			products.GET("/productsById/:id", s.getProduct)
			products.POST("/products", s.authRequired, s.adminRequired, s.createProduct)
			products.PUT("/products/:id", s.authRequired, s.adminRequired, s.updateProduct)
			products.DELETE("/products/:id", s.authRequired, s.adminRequired, s.deleteProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("/categories", s.listCategories)
			categories.GET("/categoriesById/:id", s.getCategory)
			categories.POST("/categories", s.authRequired, s.adminRequired, s.createCategory)
			categories.PUT("/categories/:id", s.authRequired, s.adminRequired, s.updateCategory)
			categories.DELETE("/categories/:id", s.authRequired, s.adminRequired, s.deleteCategory)
		}

		cart := api.Group("/cart", s.authRequired)
		{
			cart.GET("/cartItems", s.cartItems)
			cart.POST("/addCartItem/items", s.addCartItem)
			cart.PUT("/updateCartItem/items/:id", s.updateCartItem)
			cart.DELETE("/deleteCartItem/items/:id", s.deleteCartItem)
			cart.DELETE("/clearCart/", s.clearCart)
		}

		orders := api.Group("/orders", s.authRequired)
		{
			orders.POST("/createOrders", s.createOrder)
			orders.GET("/orders", s.listMyOrders)
			orders.GET("/orders/:id", s.getOrder)
			orders.PATCH("/cancelOrders/:id/cancel", s.cancelOrder)
			orders.PUT("/updateOrders/:id", s.adminRequired, s.updateOrderStatus)
			orders.DELETE("/deleteOrders/:id", s.adminRequired, s.deleteOrder)
		}
	}

	return router
}

// authRequired resolves the bearer token to an account or answers 401.
func (s *Server) authRequired(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	session, err := s.store.SessionByToken(c.Request.Context(), token)
	if err != nil || session.ExpiresAt.Before(time.Now()) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
		return
	}

	account, err := s.store.AccountByID(c.Request.Context(), session.AccountID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
		return
	}

	c.Set(accountKey, account)
	c.Next()
}

// adminRequired gates admin-only routes. Must run after authRequired.
func (s *Server) adminRequired(c *gin.Context) {
	if account := currentAccount(c); account == nil || account.Role != "admin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin role required"})
		return
	}
	c.Next()
}

func currentAccount(c *gin.Context) *store.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*store.Account)
	return account
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

// SweepSessions deletes expired sessions; wired to a cron schedule in the
// dev server binary.
func (s *Server) SweepSessions() {
	n, err := s.store.DeleteExpiredSessions(context.Background(), time.Now())
	if err != nil {
		s.logger.Warn("Session sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Swept expired sessions", zap.Int("count", n))
	}
}

// prometheusMiddleware collects HTTP metrics.
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
