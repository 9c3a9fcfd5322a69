package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatdash/internal/repositories"
)

// RequirementHandler manages requirement endpoints.
type RequirementHandler struct {
	requirementRepo repositories.RequirementRepository
}

// NewRequirementHandler builds a RequirementHandler.
func NewRequirementHandler(requirementRepo repositories.RequirementRepository) *RequirementHandler {
	return &RequirementHandler{requirementRepo: requirementRepo}
}

// List returns all open requirements, newest first.
func (h *RequirementHandler) List(c *gin.Context) {
	requirements, err := h.requirementRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requirements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": requirements})
}

// Create stores a new manual requirement.
func (h *RequirementHandler) Create(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requirement, err := h.requirementRepo.Create(c.Request.Context(), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not create requirement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requirement": requirement})
}

// Update patches the status or pin flag of a requirement.
func (h *RequirementHandler) Update(c *gin.Context) {
	id, ok := parseRequirementID(c)
	if !ok {
		return
	}

	var req struct {
		Status *string `json:"status"`
		Pinned *bool   `json:"pinned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == nil && req.Pinned == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.requirementRepo.Update(c.Request.Context(), id, req.Status, req.Pinned); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrRequirementNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": "could not update requirement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes a requirement.
func (h *RequirementHandler) Delete(c *gin.Context) {
	id, ok := parseRequirementID(c)
	if !ok {
		return
	}

	if err := h.requirementRepo.Delete(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrRequirementNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": "could not delete requirement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseRequirementID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("req_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requirement id"})
		return 0, false
	}
	return id, true
}
