// Package chat 实现私信系统的实时通知层
// event.go
// 核心职责：定义通知事件的内部信封和下发给前端的帧格式
// 事件由 Dispatcher 在消息提交后发布，经 Broker 中转，最终推送到目标用户的所有连接
package chat

import "encoding/json"

// 事件类型
const (
	EventMessage = "message" // 新消息事件，推送给发送方和接收方
	EventSeen    = "seen"    // 已读回执事件，推送给原消息发送方
	EventUnread  = "unread"  // 未读总数变化事件，推送给计数所属用户
)

// Event 通知事件内部信封
// 在 Broker（Channel 或 Kafka）中流转的统一格式
// Targets 为目标用户 ID 列表，投递时按用户扇出到其所有连接
type Event struct {
	Kind    string          `json:"kind"`
	Targets []int64         `json:"targets"`
	Payload json.RawMessage `json:"payload"`
}

// Frame 下发给前端的 WebSocket 帧
// 只保留事件类型和载荷，Targets 不暴露给客户端
type Frame struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// SeenPayload 已读回执事件载荷
// By 为执行已读操作的用户，ForUser 为原消息发送方
type SeenPayload struct {
	By         int64   `json:"by"`
	ForUser    int64   `json:"for_user"`
	MessageIds []int64 `json:"message_ids"`
}

// UnreadPayload 未读总数事件载荷
type UnreadPayload struct {
	Unread int64 `json:"unread"`
}
