package respond

// UnreadCountRespond 未读消息总数响应
// 使用位置:
//   - internal/service/message/service.go: CountUnread
type UnreadCountRespond struct {
	Unread int64 `json:"unread"`
}
