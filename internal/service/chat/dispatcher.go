// Package chat 实现私信系统的实时通知层
// dispatcher.go
// 核心职责：通知分发
// 1. 为业务层提供三类通知入口：新消息、已读回执、未读数变化
// 2. 所有通知在业务数据提交之后发布，发布失败只记录日志，不影响业务结果
// 3. deliver 为各 Broker 共用的投递函数，按目标用户扇出到在线连接
package chat

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"letstalk_server/internal/dto/respond"
)

// Dispatcher 通知分发器
// 把业务事件封装为 Event 并交给 Broker，对调用方完全尽力而为
type Dispatcher struct {
	broker EventBroker
}

// NewDispatcher 创建通知分发器
func NewDispatcher(broker EventBroker) *Dispatcher {
	return &Dispatcher{broker: broker}
}

// MessageCreated 发布新消息事件
// 目标为发送方和接收方，双方所有在线设备都会收到
func (d *Dispatcher) MessageCreated(msg respond.MessageRespond) {
	d.publish(EventMessage, []int64{msg.SenderId, msg.ReceiverId}, msg)
}

// MessagesSeen 发布已读回执事件
// actorId 为执行已读操作的用户，otherId 为原消息发送方
// 只推送给原消息发送方
func (d *Dispatcher) MessagesSeen(actorId, otherId int64, messageIds []int64) {
	d.publish(EventSeen, []int64{otherId}, SeenPayload{
		By:         actorId,
		ForUser:    otherId,
		MessageIds: messageIds,
	})
}

// UnreadChanged 发布未读总数变化事件
// 只推送给计数所属用户
func (d *Dispatcher) UnreadChanged(userId int64, count int64) {
	d.publish(EventUnread, []int64{userId}, UnreadPayload{Unread: count})
}

// publish 封装事件并交给 Broker
// 任何序列化或发布失败都被吞掉，业务结果不受通知影响
func (d *Dispatcher) publish(kind string, targets []int64, payload any) {
	if d.broker == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("marshal event payload failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	event, err := json.Marshal(Event{
		Kind:    kind,
		Targets: targets,
		Payload: data,
	})
	if err != nil {
		zap.L().Error("marshal event failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	if err := d.broker.Publish(context.Background(), event); err != nil {
		zap.L().Error("publish event failed", zap.String("kind", kind), zap.Error(err))
	}
}

// deliver 把事件投递给目标用户的所有在线连接
// 供 ChannelBroker 和 KafkaBroker 的消费循环共用
// 目标用户不在线时静默跳过
func deliver(registry *PresenceRegistry, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		zap.L().Error("unmarshal event failed", zap.Error(err))
		return
	}

	frame, err := json.Marshal(Frame{
		Kind: event.Kind,
		Data: event.Payload,
	})
	if err != nil {
		zap.L().Error("marshal frame failed", zap.String("kind", event.Kind), zap.Error(err))
		return
	}

	for _, target := range event.Targets {
		for _, conn := range registry.ConnectionsFor(target) {
			conn.Push(frame)
		}
	}
}
