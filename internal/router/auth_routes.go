package router

import (
	"github.com/gin-gonic/gin"

	"letstalk_server/internal/handler"
)

// RegisterAuthRoutes 注册认证相关路由
// 全部为公开接口 (无需认证)
func RegisterAuthRoutes(r *gin.Engine, h *handler.Handlers) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refreshToken", h.Auth.RefreshToken)
	}
}
