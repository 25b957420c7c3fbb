package request

// SendMessageRequest 发送私信请求
// 使用位置:
//   - internal/handler/message_handler.go: SendMessage
//   - internal/service/message/service.go: Send
type SendMessageRequest struct {
	ReceiverId int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}
