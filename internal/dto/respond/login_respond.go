package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login, RefreshToken
type LoginRespond struct {
	Id           int64  `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarUrl    string `json:"avatar_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
