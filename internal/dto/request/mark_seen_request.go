package request

// MarkSeenRequest 标记会话已读请求
// 使用位置:
//   - internal/handler/message_handler.go: MarkSeen
//   - internal/service/message/service.go: MarkSeen
type MarkSeenRequest struct {
	OtherId int64 `json:"other_id" binding:"required"`
}
