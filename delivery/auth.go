package delivery

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/CeKulit/cekulit-backend/middleware"
	"github.com/CeKulit/cekulit-backend/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, authLimiter middleware.RateLimiter) {
	handler := &AuthHandler{authUC: authUC}

	// Ping Route (no rate limiting)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/")
	if authLimiter != nil {
		authConfig := middleware.RateLimiterConfig{
			RequestsPerWindow: 10,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit:auth",
		}
		public.Use(middleware.EndpointRateLimitMiddleware(authLimiter, authConfig, "auth"))
	}
	{
		public.POST("/register", handler.Register)
		public.POST("/otp", handler.VerifyOTP)
		public.POST("/login", handler.Login)
		public.POST("/forget-password", handler.ForgotPassword)
		public.POST("/reset-password", handler.ResetPassword)
	}
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotVerified), errors.Is(err, domain.ErrInvalidOTP), errors.Is(err, domain.ErrResetNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageForError returns a short, user-safe message. Internal errors are
// never echoed to the client.
func messageForError(err error) string {
	if statusForError(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Register", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(req.Email)
	if err := h.authUC.Register(c.Request.Context(), req.Name, email, req.Password); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "Register", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 201, "Register", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully, please verify OTP",
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Login", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(req.Email)
	result, err := h.authUC.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "Login", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "Login", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"userId":  result.UserID,
		"token":   result.Token,
	})
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "VerifyOTP", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(req.Email)
	if err := h.authUC.VerifyOTP(c.Request.Context(), email, req.OTP); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "VerifyOTP", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "VerifyOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User successfully verified",
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ForgotPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(req.Email)
	if err := h.authUC.ForgotPassword(c.Request.Context(), email); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "ForgotPassword", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "ForgotPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your email",
	})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ResetPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": utils.TranslateValidationError(err),
		})
		return
	}

	email := strings.ToLower(req.Email)
	if err := h.authUC.ResetPassword(c.Request.Context(), email, req.NewPassword); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "ResetPassword", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "ResetPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password successfully reset",
	})
}
