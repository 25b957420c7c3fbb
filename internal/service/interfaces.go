// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、资料管理等功能
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新令牌
	RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error)
	// UpdateProfile 更新个人资料
	UpdateProfile(userId int64, req request.UpdateProfileRequest) error
	// GetUserInfo 获取单个用户信息
	GetUserInfo(userId int64) (*respond.UserInfoRespond, error)
	// GetUserList 获取用户列表（排除调用方自己）
	GetUserList(ownerId int64) ([]respond.UserInfoRespond, error)
}

// MessageService 私信业务接口
// 处理消息发送、会话查询、已读标记和未读计数
type MessageService interface {
	// Send 发送私信
	Send(senderId int64, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// ListThread 获取与指定用户的会话消息列表
	ListThread(userId, otherId int64) ([]respond.MessageRespond, error)
	// MarkSeen 将对端发来的所有未读消息标记为已读
	MarkSeen(userId int64, req request.MarkSeenRequest) (*respond.MarkSeenRespond, error)
	// CountUnread 获取调用方的未读消息总数
	CountUnread(userId int64) (*respond.UnreadCountRespond, error)
	// RecentMessages 获取调用方参与的最近消息
	RecentMessages(userId int64) ([]respond.MessageRespond, error)
}

// PostService 动态业务接口
// 处理动态发布、删除、点赞和列表查询
type PostService interface {
	// CreatePost 发布动态
	CreatePost(userId int64, req request.CreatePostRequest) (*respond.PostRespond, error)
	// DeletePost 删除动态（仅作者本人）
	DeletePost(userId, postId int64) error
	// ToggleLike 点赞开关
	ToggleLike(userId, postId int64) (*respond.ToggleLikeRespond, error)
	// ListUserPosts 获取指定用户的动态列表
	ListUserPosts(viewerId, ownerId int64) ([]respond.PostRespond, error)
}
