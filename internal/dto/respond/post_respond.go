package respond

// PostRespond 动态响应
// 使用位置:
//   - internal/service/post/service.go: CreatePost, ListUserPosts
type PostRespond struct {
	Id         int64  `json:"id"`
	UserId     int64  `json:"user_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	LikeCount  int64  `json:"like_count"`
	LikedByMe  bool   `json:"liked_by_me"`
}
