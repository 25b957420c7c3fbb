// Package chat 实现私信系统的实时通知层
// conn.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 写协程消费 SendBack 通道，读协程负责感知断连
package chat

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"letstalk_server/pkg/constants"
)

// upgrader WebSocket 升级器
// CheckOrigin 放行所有来源，前后端分离部署时避免 403
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserConn 表示一个 WebSocket 客户端连接
// 同一用户的多个设备各持有一个 UserConn，以 ConnId 区分
type UserConn struct {
	Conn     *websocket.Conn
	UserId   int64       // 连接声明的用户身份，登记前需与认证身份核对
	ConnId   string      // 连接唯一标识
	SendBack chan []byte // 待下发给前端的帧

	mu     sync.Mutex
	closed bool
}

// NewUserConn 创建连接封装
func NewUserConn(conn *websocket.Conn, userId int64, connId string) *UserConn {
	return &UserConn{
		Conn:     conn,
		UserId:   userId,
		ConnId:   connId,
		SendBack: make(chan []byte, constants.CONN_SEND_BUFFER),
	}
}

// Push 将帧放入下发队列
// 非阻塞：连接已关闭或队列已满时丢弃该帧并返回 false
// 通知属于尽力投递，慢连接不能阻塞事件循环
func (c *UserConn) Push(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendBack <- frame:
		return true
	default:
		zap.L().Warn("conn send buffer full, frame dropped",
			zap.Int64("user_id", c.UserId),
			zap.String("conn_id", c.ConnId))
		return false
	}
}

// Close 关闭连接并释放下发队列
// 可重复调用，只有首次调用生效
func (c *UserConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.SendBack)
	if c.Conn != nil {
		if err := c.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// ReadLoop 从 WebSocket 读取消息直到连接断开
// 通知通道是单向下行的，入站帧只用于感知断连，内容忽略
// onClose: 连接断开时的清理回调
func (c *UserConn) ReadLoop(onClose func()) {
	zap.L().Debug("ws read goroutine start",
		zap.Int64("user_id", c.UserId),
		zap.String("conn_id", c.ConnId))
	defer onClose()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			zap.L().Info("ws connection closed",
				zap.Int64("user_id", c.UserId),
				zap.String("conn_id", c.ConnId),
				zap.Error(err))
			return
		}
	}
}

// WriteLoop 从 SendBack 通道读取帧并发送给 WebSocket
func (c *UserConn) WriteLoop() {
	zap.L().Debug("ws write goroutine start",
		zap.Int64("user_id", c.UserId),
		zap.String("conn_id", c.ConnId))
	for frame := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}
