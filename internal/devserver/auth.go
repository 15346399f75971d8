package devserver

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload", "details": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		return
	}

	account := &store.Account{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "customer",
	}

	if err := s.store.CreateAccount(c.Request.Context(), account); err != nil {
		if err == store.ErrConflict {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login payload"})
		return
	}

	account, err := s.store.AccountByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	session := &store.Session{
		Token:     uuid.New().String(),
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.store.CreateSession(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": session.Token})
}

func (s *Server) logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := s.store.DeleteSession(c.Request.Context(), token); err != nil {
		s.logger.Warn("Failed to delete session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) profile(c *gin.Context) {
	c.JSON(http.StatusOK, currentAccount(c).User())
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "details": err.Error()})
		return
	}

	account := currentAccount(c)
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(req.OldPassword)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
		return
	}
	account.PasswordHash = hash

	if err := s.store.UpdateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	// Respond identically whether or not the account exists.
	account, err := s.store.AccountByEmail(c.Request.Context(), req.Email)
	if err == nil {
		account.ResetToken = uuid.New().String()
		account.ResetExpiry = time.Now().Add(time.Hour)
		if err := s.store.UpdateAccount(c.Request.Context(), account); err == nil {
			// No mail delivery in the dev server; the token is logged instead.
			s.logger.Info("Password reset requested",
				zap.String("email", req.Email),
				zap.String("reset_token", account.ResetToken))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	account, err := s.store.AccountByResetToken(c.Request.Context(), c.Param("token"))
	if err != nil || account.ResetExpiry.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}
	account.PasswordHash = hash
	account.ResetToken = ""

	if err := s.store.UpdateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

func (s *Server) uploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing avatar file"})
		return
	}

	// The dev server does not persist uploads; it assigns a stable URL.
	avatar := "/uploads/" + uuid.New().String() + filepath.Ext(file.Filename)

	account := currentAccount(c)
	account.Avatar = avatar
	if err := s.store.UpdateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": avatar})
}
