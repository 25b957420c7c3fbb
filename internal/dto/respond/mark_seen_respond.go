package respond

// MarkSeenRespond 标记会话已读响应
// Updated 为本次发生 未读->已读 跃迁的消息数量
// Unread 为操作后调用方的全局未读总数
// 使用位置:
//   - internal/service/message/service.go: MarkSeen
type MarkSeenRespond struct {
	Updated    int64   `json:"updated"`
	Unread     int64   `json:"unread"`
	MessageIds []int64 `json:"message_ids"`
}
