// Package handler 提供 HTTP 请求处理器
// 本文件处理私信消息相关的 API 请求
package handler

import (
	"net/http"

	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/service"
	"letstalk_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 私信请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建私信处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送私信
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond (已提交的消息)
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Send(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetThread 获取会话消息列表
// GET /message/thread?other_id=xxx
// 查询参数: request.GetThreadRequest
// 响应: []respond.MessageRespond
func (h *MessageHandler) GetThread(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.GetThreadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.ListThread(userId, req.OtherId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkSeen 标记会话已读
// POST /message/markSeen
// 请求体: request.MarkSeenRequest
// 响应: respond.MarkSeenRespond
func (h *MessageHandler) MarkSeen(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	var req request.MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.MarkSeen(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUnreadCount 获取未读消息总数
// GET /message/unreadCount
// 响应: respond.UnreadCountRespond
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	data, err := h.messageSvc.CountUnread(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRecentMessages 获取最近消息
// GET /message/recent
// 响应: []respond.MessageRespond
func (h *MessageHandler) GetRecentMessages(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	data, err := h.messageSvc.RecentMessages(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
