package router

import (
	"github.com/gin-gonic/gin"

	"letstalk_server/internal/handler"
	"letstalk_server/internal/infrastructure/middleware"
)

// RegisterMessageRoutes 注册私信相关路由
func RegisterMessageRoutes(r *gin.Engine, h *handler.Handlers) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/send", h.Message.SendMessage)
		messageGroup.GET("/thread", h.Message.GetThread)
		messageGroup.POST("/markSeen", h.Message.MarkSeen)
		messageGroup.GET("/unreadCount", h.Message.GetUnreadCount)
		messageGroup.GET("/recent", h.Message.GetRecentMessages)
	}
}
