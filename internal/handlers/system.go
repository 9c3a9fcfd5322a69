package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatdash/internal/models"
	"chatdash/internal/repositories"
)

// StubUserID is the fixed account id the stub reports as the local user.
const StubUserID int64 = 777000

// SystemHandler covers status, identity, settings, and the fake AI surface.
type SystemHandler struct {
	settingsRepo repositories.SettingsRepository
}

// NewSystemHandler builds a SystemHandler.
func NewSystemHandler(settingsRepo repositories.SettingsRepository) *SystemHandler {
	return &SystemHandler{settingsRepo: settingsRepo}
}

// Status reports the stub as always connected.
func (h *SystemHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

// MyUserID returns the fixed local account id.
func (h *SystemHandler) MyUserID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": StubUserID})
}

// GetSettings returns the stored settings blob.
func (h *SystemHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings replaces the stored settings blob.
func (h *SystemHandler) SaveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsRepo.Put(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AIAssist returns a canned draft built from the last message.
func (h *SystemHandler) AIAssist(c *gin.Context) {
	var req struct {
		Messages []string `json:"messages"`
		Prompt   string   `json:"prompt"`
		Model    string   `json:"model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	last := ""
	if len(req.Messages) > 0 {
		last = req.Messages[len(req.Messages)-1]
	}
	reply := "Thanks, noted."
	if last != "" {
		reply = fmt.Sprintf("Regarding %q: thanks, we will follow up shortly.", truncate(last, 60))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}

// Image always reports no stored media.
func (h *SystemHandler) Image(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "no media stored for message"})
}

// Tags mimics a local model server's tag listing.
func (h *SystemHandler) Tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": []gin.H{
		{"name": "qwen2.5:14b-instruct"},
		{"name": "llama3.1:8b"},
	}})
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
