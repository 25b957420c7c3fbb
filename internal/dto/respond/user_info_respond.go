package respond

// UserInfoRespond 用户信息响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo, GetUserList
type UserInfoRespond struct {
	Id          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarUrl   string `json:"avatar_url"`
	CreatedAt   string `json:"created_at"`
}
