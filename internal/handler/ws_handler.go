// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"
	"strconv"

	"letstalk_server/internal/service/chat"
	"letstalk_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler WebSocket 请求处理器
type WsHandler struct {
	chatServer *chat.ChatServer
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(chatServer *chat.ChatServer) *WsHandler {
	return &WsHandler{chatServer: chatServer}
}

// Connect WebSocket 接入（升级 HTTP 连接为 WebSocket）
// GET /ws/connect?client_id=xxx
// 查询参数: client_id - 连接声明的用户 ID
// 功能:
//   - 核对连接声明的身份与认证身份
//   - 将 HTTP 连接升级为 WebSocket 连接
//   - 登记到在线状态表，开始接收实时通知
func (h *WsHandler) Connect(c *gin.Context) {
	authedId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}

	clientId := c.Query("client_id")
	claimedId, err := strconv.ParseInt(clientId, 10, 64)
	if err != nil {
		zap.L().Error("client_id获取失败", zap.String("client_id", clientId))
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeInvalidParam,
			"msg":  "client_id获取失败",
		})
		return
	}

	// 升级前先核对身份，避免为非法连接建立 WebSocket
	if claimedId != authedId {
		c.JSON(http.StatusForbidden, gin.H{
			"code": errorx.CodePermissionDenied,
			"msg":  "无权以他人身份建立连接",
		})
		return
	}

	if err := h.chatServer.HandleConnection(c, authedId, claimedId); err != nil {
		zap.L().Error("ws连接建立失败", zap.Int64("user_id", authedId), zap.Error(err))
	}
}

// Disconnect WebSocket 登出
// POST /ws/disconnect
// 功能:
//   - 关闭当前用户的所有 WebSocket 连接
//   - 从在线状态表中移除
func (h *WsHandler) Disconnect(c *gin.Context) {
	userId, ok := currentUserId(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "请先登录"})
		return
	}
	h.chatServer.Logout(userId)
	HandleSuccess(c, nil)
}
