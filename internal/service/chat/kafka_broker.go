// Package chat 实现私信系统的实时通知层
// kafka_broker.go
// 核心职责：分布式模式下的事件代理实现
// 1. 事件发布到 Kafka 主题，由各节点的消费循环读取
// 2. 消费到的事件按目标用户扇出到本节点的在线连接
// 3. 多实例部署时每个节点都会消费全量事件，各自只命中本地连接
package chat

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	myconfig "letstalk_server/internal/config"
)

// KafkaBroker 基于 Kafka 的事件代理
type KafkaBroker struct {
	// client Kafka 客户端
	client *KafkaClient
	// registry 在线状态登记表，投递时查询目标用户的连接
	registry *PresenceRegistry
	// cancel 终止消费循环
	cancel context.CancelFunc
	// consumeCtx 消费循环上下文
	consumeCtx context.Context
}

// NewKafkaBroker 创建 KafkaBroker 实例
func NewKafkaBroker(client *KafkaClient, registry *PresenceRegistry) *KafkaBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaBroker{
		client:     client,
		registry:   registry,
		cancel:     cancel,
		consumeCtx: ctx,
	}
}

// Publish 实现 EventBroker 接口：发布事件到 Kafka
func (b *KafkaBroker) Publish(ctx context.Context, event []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return b.client.SendMessage(ctx, key, event)
}

// Start 启动 Kafka 消费循环
// 持续读取事件并投递给目标用户的在线连接，直到 Close 被调用
func (b *KafkaBroker) Start() {
	zap.L().Info("kafka broker started")
	for {
		msg, err := b.client.Consumer.ReadMessage(b.consumeCtx)
		if err != nil {
			// 上下文取消说明正在关闭，正常退出
			if b.consumeCtx.Err() != nil {
				zap.L().Info("kafka broker consume loop exit")
				return
			}
			zap.L().Error("kafka read message failed", zap.Error(err))
			continue
		}
		deliver(b.registry, msg.Value)
	}
}

// Close 终止消费循环
// Kafka 连接资源由 KafkaClient.KafkaClose 统一释放
func (b *KafkaBroker) Close() {
	b.cancel()
}

// 确保 KafkaBroker 实现了 EventBroker 接口
var _ EventBroker = (*KafkaBroker)(nil)
