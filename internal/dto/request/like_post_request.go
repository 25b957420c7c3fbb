package request

// LikePostRequest 点赞/取消点赞动态请求
// 使用位置:
//   - internal/handler/post_handler.go: ToggleLike
type LikePostRequest struct {
	PostId int64 `json:"post_id" binding:"required"`
}
