package router

import (
	"github.com/gin-gonic/gin"

	"letstalk_server/internal/handler"
	"letstalk_server/internal/infrastructure/middleware"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由
func RegisterWebSocketRoutes(r *gin.Engine, h *handler.Handlers) {
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.JWTAuth())
	{
		wsGroup.GET("/connect", h.Ws.Connect)
		wsGroup.POST("/disconnect", h.Ws.Disconnect)
	}
}
