package request

// UpdateProfileRequest 更新个人资料请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateProfile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=120"`
	Bio         string `json:"bio" binding:"max=500"`
	AvatarUrl   string `json:"avatar_url" binding:"max=255"`
}
