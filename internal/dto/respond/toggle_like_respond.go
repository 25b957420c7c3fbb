package respond

// ToggleLikeRespond 点赞开关响应
// Liked 为操作后的点赞状态
// 使用位置:
//   - internal/service/post/service.go: ToggleLike
type ToggleLikeRespond struct {
	PostId    int64 `json:"post_id"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
