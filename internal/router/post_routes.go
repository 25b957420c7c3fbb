package router

import (
	"github.com/gin-gonic/gin"

	"letstalk_server/internal/handler"
	"letstalk_server/internal/infrastructure/middleware"
)

// RegisterPostRoutes 注册动态相关路由
func RegisterPostRoutes(r *gin.Engine, h *handler.Handlers) {
	postGroup := r.Group("/post")
	postGroup.Use(middleware.JWTAuth())
	{
		postGroup.POST("/create", h.Post.CreatePost)
		postGroup.POST("/delete", h.Post.DeletePost)
		postGroup.POST("/toggleLike", h.Post.ToggleLike)
		postGroup.GET("/list", h.Post.ListUserPosts)
	}
}
