// Package model 定义数据库实体模型
// 本文件定义私信消息模型，消息日志只追加、不修改、不删除
// 唯一合法的变更是 seen_at 从 NULL 到时间戳的单次跃迁
package model

import (
	"database/sql"
	"time"
)

// 消息状态，由 seen_at 派生，不落库，避免与 seen_at 不一致
const (
	StatusSent = "sent" // 已发送，接收方尚未查看
	StatusSeen = "seen" // 接收方已查看
)

// Message 私信消息模型
// 对应数据库 message 表
// 索引设计：
//   - idx_message_thread (sender_id, receiver_id, created_at) 支撑会话查询
//   - idx_message_unread (receiver_id, seen_at) 支撑未读计数
type Message struct {
	// ID 数据库自增主键，仅内部使用
	ID uint `gorm:"primarykey"`

	// Uuid 消息唯一标识
	// 雪花算法生成的 int64，由存储层在提交时分配，单节点内单调递增
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	// SenderId 发送者用户 ID
	SenderId int64 `gorm:"column:sender_id;type:bigint;not null;index:idx_message_thread,priority:1"`

	// ReceiverId 接收者用户 ID，与 SenderId 必须不同
	ReceiverId int64 `gorm:"column:receiver_id;type:bigint;not null;index:idx_message_thread,priority:2;index:idx_message_unread,priority:1"`

	// Content 消息文本内容，非空
	Content string `gorm:"column:content;type:TEXT;not null"`

	// CreatedAt 创建时间，创建后不可变
	CreatedAt time.Time `gorm:"column:created_at;index:idx_message_thread,priority:3"`

	// SeenAt 接收方查看时间
	// NULL 表示未读；只允许由接收方触发一次 NULL -> 时间戳 的跃迁
	SeenAt sql.NullTime `gorm:"column:seen_at;index:idx_message_unread,priority:2"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}

// Status 派生消息状态
// seen_at 为空返回 sent，否则返回 seen
func (m *Message) Status() string {
	if m.SeenAt.Valid {
		return StatusSeen
	}
	return StatusSent
}
