package request

// GetPostsRequest 获取用户动态列表请求
// user_id 为空时查看自己的动态
// 使用位置:
//   - internal/handler/post_handler.go: ListUserPosts
type GetPostsRequest struct {
	UserId int64 `json:"user_id" form:"user_id"`
}
