package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatdash/internal/repositories"
)

// ChannelHandler manages channel endpoints.
type ChannelHandler struct {
	channelRepo  repositories.ChannelRepository
	messageRepo  repositories.MessageRepository
	settingsRepo repositories.SettingsRepository
}

// NewChannelHandler builds a ChannelHandler.
func NewChannelHandler(channelRepo repositories.ChannelRepository, messageRepo repositories.MessageRepository, settingsRepo repositories.SettingsRepository) *ChannelHandler {
	return &ChannelHandler{
		channelRepo:  channelRepo,
		messageRepo:  messageRepo,
		settingsRepo: settingsRepo,
	}
}

// List returns channels, flagging requirement trackers from settings.
func (h *ChannelHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "1"

	channels, err := h.channelRepo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load channels"})
		return
	}

	settings, err := h.settingsRepo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	for i := range channels {
		channels[i].IsRequirement = settings.IsRequirementChannel(channels[i].ID)
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// Toggle activates or deactivates a channel.
func (h *ChannelHandler) Toggle(c *gin.Context) {
	id, ok := parseChannelID(c)
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.channelRepo.SetActive(c.Request.Context(), id, req.Active); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrChannelNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": "could not toggle channel"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Pin pins or unpins a channel.
func (h *ChannelHandler) Pin(c *gin.Context) {
	id, ok := parseChannelID(c)
	if !ok {
		return
	}

	var req struct {
		Pinned bool `json:"pinned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.channelRepo.SetPinned(c.Request.Context(), id, req.Pinned); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrChannelNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": "could not pin channel"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PurgeMessages deletes every stored message of a channel.
func (h *ChannelHandler) PurgeMessages(c *gin.Context) {
	id, ok := parseChannelID(c)
	if !ok {
		return
	}

	if err := h.messageRepo.DeleteByChannel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not purge messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Counts returns the total message count per channel.
func (h *ChannelHandler) Counts(c *gin.Context) {
	counts, err := h.messageRepo.CountsByChannel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count messages"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// LastMessages returns the latest message preview per channel.
func (h *ChannelHandler) LastMessages(c *gin.Context) {
	previews, err := h.messageRepo.LatestByChannel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load previews"})
		return
	}
	c.JSON(http.StatusOK, previews)
}

func parseChannelID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return 0, false
	}
	return id, true
}
