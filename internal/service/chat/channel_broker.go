// Package chat 实现私信系统的实时通知层
// channel_broker.go
// 核心职责：单机模式下的事件代理实现
// 1. 事件经进程内缓冲通道流转，不依赖外部消息队列
// 2. 消费循环将事件按目标用户扇出到在线连接
// 3. 适合小规模或开发环境
package chat

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"letstalk_server/pkg/constants"
)

// ChannelBroker 进程内事件代理
type ChannelBroker struct {
	// transmit 事件流转通道
	transmit chan []byte
	// registry 在线状态登记表，投递时查询目标用户的连接
	registry *PresenceRegistry

	closeOnce sync.Once
}

// NewChannelBroker 创建 ChannelBroker 实例
func NewChannelBroker(registry *PresenceRegistry) *ChannelBroker {
	return &ChannelBroker{
		transmit: make(chan []byte, constants.CHANNEL_SIZE),
		registry: registry,
	}
}

// Publish 实现 EventBroker 接口：发布事件到通道
// 非阻塞：通道已满时丢弃事件并记录告警
// 通知属于尽力投递，发布方不能因此阻塞
func (b *ChannelBroker) Publish(ctx context.Context, event []byte) error {
	select {
	case b.transmit <- event:
		return nil
	default:
		zap.L().Warn("event channel full, event dropped")
		return nil
	}
}

// Start 启动事件消费循环
// 从通道取出事件并投递给目标用户的所有在线连接
func (b *ChannelBroker) Start() {
	zap.L().Info("channel broker started", zap.Int("buffer", constants.CHANNEL_SIZE))
	for event := range b.transmit {
		deliver(b.registry, event)
	}
}

// Close 关闭事件通道，消费循环随之退出
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.transmit)
	})
}

// 确保 ChannelBroker 实现了 EventBroker 接口
var _ EventBroker = (*ChannelBroker)(nil)
