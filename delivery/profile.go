package delivery

import (
	"net/http"

	"github.com/CeKulit/cekulit-backend/config"
	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/CeKulit/cekulit-backend/utils"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	authUC domain.AuthUseCase
}

func NewProfileHandler(r *gin.Engine, authUC domain.AuthUseCase) {
	handler := &ProfileHandler{authUC: authUC}

	protected := r.Group("/")
	protected.Use(config.AuthMiddleware(authUC.GetTokenManager()))
	{
		protected.GET("/profile", handler.GetProfile)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.POST("/streak", handler.RecordStreak)
	}
}

// emailFromContext reads the identity the auth middleware stored.
func emailFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get("email")
	if !exists {
		return "", false
	}
	email, ok := val.(string)
	return email, ok && email != ""
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email, ok := emailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access Denied",
		})
		return
	}

	account, err := h.authUC.Profile(c.Request.Context(), email)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "GetProfile", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "GetProfile", nil)
	c.JSON(http.StatusOK, gin.H{
		"name":  account.Name,
		"email": account.Email,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	email, ok := emailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access Denied",
		})
		return
	}

	update := domain.ProfileUpdate{
		Name:   c.PostForm("name"),
		Age:    c.PostForm("age"),
		Gender: c.PostForm("gender"),
	}

	// The avatar file is optional; without one only the text fields change.
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			utils.PrintLogInfo(&email, 500, "UpdateProfile", &err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "File upload failed",
			})
			return
		}
		defer file.Close()

		update.Avatar = &domain.AvatarUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		}
	}

	avatarURL, err := h.authUC.UpdateProfile(c.Request.Context(), email, update)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "UpdateProfile", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "UpdateProfile", nil)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Successfully updated profile!",
		"avatarUrl": avatarURL,
	})
}

func (h *ProfileHandler) RecordStreak(c *gin.Context) {
	email, ok := emailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access Denied",
		})
		return
	}

	next, err := h.authUC.RecordStreakHit(c.Request.Context(), email)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&email, status, "RecordStreak", &err)
		c.JSON(status, gin.H{
			"success": false,
			"message": messageForError(err),
		})
		return
	}

	utils.PrintLogInfo(&email, 200, "RecordStreak", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Streak updated successfully",
		"streak":  next.Streak,
		"lastHit": next.LastHit,
	})
}
