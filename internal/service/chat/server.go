// Package chat 实现私信系统的实时通知层
// server.go
// 核心职责：通知服务器聚合结构和依赖注入
// 封装 PresenceRegistry、EventBroker、Dispatcher 等组件，提供统一的生命周期管理
package chat

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatServer 通知服务器聚合结构
// 封装所有实时通知组件，通过依赖注入管理生命周期
type ChatServer struct {
	// Registry 在线状态登记表
	Registry *PresenceRegistry

	// Broker 事件代理，实现 EventBroker 接口
	// 根据配置可能是 ChannelBroker 或 KafkaBroker
	Broker EventBroker

	// Dispatcher 通知分发器，供业务层发布事件
	Dispatcher *Dispatcher

	// KafkaClient Kafka 客户端（仅 Kafka 模式使用）
	KafkaClient *KafkaClient

	// mode 运行模式: "channel" 或 "kafka"
	mode string
}

// NewChatServer 创建通知服务器实例
// 根据配置选择 ChannelBroker 或 KafkaBroker
// mode: "channel" 或 "kafka"
func NewChatServer(mode string) *ChatServer {
	cs := &ChatServer{
		Registry: NewPresenceRegistry(),
		mode:     mode,
	}

	if mode == "kafka" {
		// Kafka 模式
		cs.KafkaClient = NewKafkaClient()
		cs.KafkaClient.KafkaInit()
		cs.Broker = NewKafkaBroker(cs.KafkaClient, cs.Registry)
	} else {
		// Channel 模式（默认）
		cs.Broker = NewChannelBroker(cs.Registry)
	}

	cs.Dispatcher = NewDispatcher(cs.Broker)
	return cs
}

// Start 启动事件消费循环（阻塞，通常在独立协程中调用）
func (cs *ChatServer) Start() {
	cs.Broker.Start()
}

// Close 关闭通知服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaClose()
	}
}

// HandleConnection 建立新的 WebSocket 连接并登记在线状态
// 认证身份与连接声明身份的核对由 Registry.Join 完成
// c: gin 上下文，用于 WebSocket 升级
// authedId: 认证层确认的用户 ID
// claimedId: 连接声明的用户 ID
// 返回: 登记失败时返回错误（此时连接已被关闭）
func (cs *ChatServer) HandleConnection(c *gin.Context, authedId, claimedId int64) error {
	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return err
	}

	conn := NewUserConn(wsConn, claimedId, uuid.NewString())
	if err := cs.Registry.Join(authedId, conn); err != nil {
		conn.Close()
		return err
	}

	go conn.WriteLoop()
	go conn.ReadLoop(func() {
		cs.Registry.Leave(conn)
		conn.Close()
	})
	zap.L().Info("ws连接成功", zap.Int64("user_id", claimedId), zap.String("conn_id", conn.ConnId))
	return nil
}

// Logout 强制登出用户的所有连接
func (cs *ChatServer) Logout(userId int64) {
	for _, conn := range cs.Registry.LeaveAll(userId) {
		conn.Close()
	}
}
