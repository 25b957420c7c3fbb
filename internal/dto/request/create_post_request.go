package request

// CreatePostRequest 发布动态请求
// 使用位置:
//   - internal/handler/post_handler.go: CreatePost
type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
