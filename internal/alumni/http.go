package alumni

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reconnect-app/reconnect-backend/internal/domain"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

type Handler struct {
	repo *Repo
}

func Register(r gin.IRouter, repo *Repo) {
	h := &Handler{repo: repo}
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.POST("", h.Create)
	r.PATCH("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.repo.List(c.Request.Context(), c.Query("collegeId"), c.Query("universityId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alumni": out})
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alumni not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alumni": a})
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Email           string             `json:"email" binding:"required,email"`
		Name            string             `json:"name" binding:"required"`
		UniversityID    string             `json:"universityId"`
		CollegeID       string             `json:"collegeId"`
		Phone           string             `json:"phone"`
		GraduationYear  int                `json:"graduationYear" binding:"required"`
		Degree          string             `json:"degree"`
		Department      string             `json:"department"`
		CurrentCompany  string             `json:"currentCompany"`
		CurrentPosition string             `json:"currentPosition"`
		Location        string             `json:"location"`
		Bio             string             `json:"bio"`
		Skills          []string           `json:"skills"`
		SocialLinks     domain.SocialLinks `json:"socialLinks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := domain.Alumni{
		User: domain.User{
			Email:        req.Email,
			Name:         req.Name,
			UniversityID: req.UniversityID,
			CollegeID:    req.CollegeID,
			Phone:        req.Phone,
		},
		GraduationYear:  req.GraduationYear,
		Degree:          req.Degree,
		Department:      req.Department,
		CurrentCompany:  req.CurrentCompany,
		CurrentPosition: req.CurrentPosition,
		Location:        req.Location,
		Bio:             req.Bio,
		Skills:          req.Skills,
		SocialLinks:     req.SocialLinks,
	}

	id, err := h.repo.Create(c.Request.Context(), a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) Update(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	err := h.repo.Update(c.Request.Context(), c.Param("id"), updates)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "alumni not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
