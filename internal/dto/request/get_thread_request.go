package request

// GetThreadRequest 获取会话消息列表请求
// 使用位置:
//   - internal/handler/message_handler.go: GetThread
type GetThreadRequest struct {
	OtherId int64 `json:"other_id" form:"other_id" binding:"required"`
}
