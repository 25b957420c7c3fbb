// Package handler 提供 HTTP 请求处理器
// 本文件处理动态和点赞相关的 API 请求
package handler

import (
	"net/http"

	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/service"
	"letstalk_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// PostHandler 动态请求处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建动态处理器实例
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// CreatePost 发布动态
// POST /post/create
// 请求体: request.CreatePostRequest
// 响应: respond.PostRespond
func (h *PostHandler) CreatePost(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.CreatePost(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeletePost 删除动态
// POST /post/delete
// 请求体: request.DeletePostRequest
// 响应: nil (无返回数据)
func (h *PostHandler) DeletePost(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.DeletePost(userId, req.PostId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ToggleLike 点赞/取消点赞
// POST /post/toggleLike
// 请求体: request.LikePostRequest
// 响应: respond.ToggleLikeRespond
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.LikePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.ToggleLike(userId, req.PostId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListUserPosts 获取用户动态列表
// GET /post/list?user_id=xxx
// 查询参数: request.GetPostsRequest，user_id 为空时查看自己的动态
// 响应: []respond.PostRespond
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.GetPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	ownerId := req.UserId
	if ownerId == 0 {
		ownerId = userId
	}
	data, err := h.postSvc.ListUserPosts(userId, ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
