package router

import (
	"github.com/gin-gonic/gin"

	"letstalk_server/internal/handler"
	"letstalk_server/internal/infrastructure/middleware"
)

// RegisterUserRoutes 注册用户资料相关路由
func RegisterUserRoutes(r *gin.Engine, h *handler.Handlers) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/me", h.User.GetMyInfo)
		userGroup.POST("/updateProfile", h.User.UpdateProfile)
		userGroup.GET("/getUserList", h.User.GetUserList)
	}
}
