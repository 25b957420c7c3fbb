// Package chat 实现私信系统的实时通知层
// broker.go
// 核心职责：定义事件代理接口
// 抽象事件发布和消费，支持 Kafka 和 Channel 两种实现
package chat

import "context"

// EventBroker 定义事件代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
type EventBroker interface {
	// Publish 发布事件到消息队列/通道
	Publish(ctx context.Context, event []byte) error
	// Start 启动事件消费循环
	Start()
	// Close 关闭代理资源
	Close()
}
