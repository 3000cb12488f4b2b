package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
)

type Handler struct {
	service *Service
}

// RegisterPublic mounts the routes reachable without a session token.
func RegisterPublic(r gin.IRouter, service *Service) {
	h := &Handler{service: service}
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.POST("/reset-password", h.ResetPassword)
}

// RegisterProtected mounts the routes requiring a verified ID token.
func RegisterProtected(r gin.IRouter, service *Service) {
	h := &Handler{service: service}
	r.POST("/logout", h.Logout)
	r.POST("/change-password", h.ChangePassword)
	r.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrProfileMissing) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProfileMissing.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=6"`
		Name         string `json:"name"`
		Role         string `json:"role"`
		UniversityID string `json:"universityId"`
		CollegeID    string `json:"collegeId"`
		Phone        string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req.Email, req.Password, SignupParams{
		Name:         req.Name,
		Role:         req.Role,
		UniversityID: req.UniversityID,
		CollegeID:    req.CollegeID,
		Phone:        req.Phone,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	uid := c.GetString("firebase_uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), email, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("firebase_uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), uid, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
