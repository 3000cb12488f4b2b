package colleges

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
	colleges, err := h.repo.List(c.Request.Context(), c.Query("universityId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": colleges})
}

func (h *Handler) Get(c *gin.Context) {
	college, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if college == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "college not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": college})
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name               string   `json:"name" binding:"required"`
		UniversityID       string   `json:"universityId" binding:"required"`
		Logo               string   `json:"logo"`
		Description        string   `json:"description"`
		Departments        []string `json:"departments"`
		EstablishedYear    int      `json:"establishedYear"`
		Website            string   `json:"website"`
		ContactEmail       string   `json:"contactEmail" binding:"required,email"`
		Phone              string   `json:"phone"`
		AdminName          string   `json:"adminName" binding:"required"`
		AdminEmail         string   `json:"adminEmail" binding:"required,email"`
		AdminPassword      string   `json:"adminPassword" binding:"required"`
		AdminContactNumber string   `json:"adminContactNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), domain.College{
		Name:               req.Name,
		UniversityID:       req.UniversityID,
		Logo:               req.Logo,
		Description:        req.Description,
		Departments:        req.Departments,
		EstablishedYear:    req.EstablishedYear,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
		Phone:              req.Phone,
		AdminName:          req.AdminName,
		AdminEmail:         req.AdminEmail,
		AdminPassword:      req.AdminPassword,
		AdminContactNumber: req.AdminContactNumber,
	})
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
		c.JSON(http.StatusNotFound, gin.H{"error": "college not found"})
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
