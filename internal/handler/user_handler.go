// Package handler 提供 HTTP 请求处理器
// 本文件处理用户资料相关的 API 请求
package handler

import (
	"net/http"

	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/service"
	"letstalk_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetMyInfo 获取当前用户信息
// GET /user/me
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetMyInfo(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	data, err := h.userSvc.GetUserInfo(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateProfile 更新个人资料
// POST /user/updateProfile
// 请求体: request.UpdateProfileRequest
// 响应: nil (无返回数据)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.UpdateProfile(userId, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetUserList 获取用户列表（排除自己）
// GET /user/getUserList
// 响应: []respond.UserInfoRespond
func (h *UserHandler) GetUserList(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	data, err := h.userSvc.GetUserList(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
