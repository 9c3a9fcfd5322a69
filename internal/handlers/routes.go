package handlers

import (
	"github.com/gin-gonic/gin"

	"chatdash/internal/repositories"
)

// Deps bundles the repositories the stub API needs.
type Deps struct {
	Channels     repositories.ChannelRepository
	Messages     repositories.MessageRepository
	Requirements repositories.RequirementRepository
	Settings     repositories.SettingsRepository
}

// Register mounts every stub API route on the router.
func Register(r *gin.Engine, deps Deps) {
	channelHandler := NewChannelHandler(deps.Channels, deps.Messages, deps.Settings)
	messageHandler := NewMessageHandler(deps.Messages)
	requirementHandler := NewRequirementHandler(deps.Requirements)
	systemHandler := NewSystemHandler(deps.Settings)

	r.GET("/status", systemHandler.Status)
	r.GET("/my_user_id", systemHandler.MyUserID)
	r.GET("/settings", systemHandler.GetSettings)
	r.POST("/settings", systemHandler.SaveSettings)
	r.POST("/ai_assist", systemHandler.AIAssist)
	r.GET("/image/:message_id", systemHandler.Image)
	r.GET("/api/tags", systemHandler.Tags)

	r.GET("/channels", channelHandler.List)
	r.POST("/channels/:channel_id/toggle", channelHandler.Toggle)
	r.POST("/channels/:channel_id/pin", channelHandler.Pin)
	r.DELETE("/channels/:channel_id/messages", channelHandler.PurgeMessages)
	r.GET("/channel_counts", channelHandler.Counts)
	r.GET("/last_messages", channelHandler.LastMessages)

	r.GET("/messages", messageHandler.List)
	r.DELETE("/messages/:message_id", messageHandler.Delete)
	r.POST("/send_message", messageHandler.Send)

	r.GET("/requirements", requirementHandler.List)
	r.POST("/requirements", requirementHandler.Create)
	r.PUT("/requirements/:req_id", requirementHandler.Update)
	r.DELETE("/requirements/:req_id", requirementHandler.Delete)
}
