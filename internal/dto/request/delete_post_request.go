package request

// DeletePostRequest 删除动态请求
// 使用位置:
//   - internal/handler/post_handler.go: DeletePost
type DeletePostRequest struct {
	PostId int64 `json:"post_id" binding:"required"`
}
