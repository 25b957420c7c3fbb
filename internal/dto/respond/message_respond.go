package respond

// MessageRespond 私信消息响应
// 随接口响应和 WebSocket message 事件下发
// Status 由 seen_at 派生：空为 sent，非空为 seen
// 使用位置:
//   - internal/service/message/service.go: Send, ListThread, RecentMessages
//   - internal/service/chat/dispatcher.go: MessageCreated
type MessageRespond struct {
	Id         int64   `json:"id"`
	SenderId   int64   `json:"sender_id"`
	SenderName string  `json:"sender_name"`
	ReceiverId int64   `json:"receiver_id"`
	Content    string  `json:"content"`
	CreatedAt  string  `json:"created_at"`
	SeenAt     *string `json:"seen_at"`
	Status     string  `json:"status"`
}
