// Package mysql 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的模块中
package mysql

import (
	"time"

	"letstalk_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户的增删改查操作
type UserRepository interface {
	// FindById 根据 ID 查找用户
	FindById(id int64) (*model.User, error)
	// FindByIds 批量根据 ID 查找用户
	FindByIds(ids []int64) ([]model.User, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.User, error)
	// FindAllExcept 查找除指定用户外的所有用户
	FindAllExcept(excludeId int64) ([]model.User, error)
	// Create 创建新用户
	Create(user *model.User) error
	// Update 更新用户信息
	Update(user *model.User) error
}

// MessageRepository 私信消息数据访问接口
// 消息日志只追加，唯一的更新路径是 MarkSeen
type MessageRepository interface {
	// Create 创建新消息
	Create(message *model.Message) error
	// FindThread 查找两个用户之间的双向消息，按时间升序
	FindThread(userOneId, userTwoId int64) ([]model.Message, error)
	// FindRecentByUser 查找用户参与的最近消息，按时间降序
	FindRecentByUser(userId int64, limit int) ([]model.Message, error)
	// MarkSeen 将 sender 发给 receiver 的未读消息标记为已读
	// 返回本次发生 未读->已读 跃迁的消息 uuid 列表
	MarkSeen(receiverId, senderId int64, seenAt time.Time) ([]int64, error)
	// CountUnseen 统计用户的未读消息总数
	CountUnseen(receiverId int64) (int64, error)
}

// PostRepository 动态数据访问接口
// 管理用户动态和点赞关系
type PostRepository interface {
	// Create 创建新动态
	Create(post *model.Post) error
	// FindById 根据 ID 查找动态
	FindById(id int64) (*model.Post, error)
	// FindByUserId 查找用户的所有动态，按时间降序
	FindByUserId(userId int64) ([]model.Post, error)
	// Delete 删除动态及其点赞记录
	Delete(id int64) error
	// FindLike 查找用户对动态的点赞记录
	FindLike(userId, postId int64) (*model.PostLike, error)
	// CreateLike 创建点赞记录
	CreateLike(like *model.PostLike) error
	// DeleteLike 删除点赞记录
	DeleteLike(userId, postId int64) error
	// CountLikes 统计动态的点赞数
	CountLikes(postId int64) (int64, error)
	// CountLikesByPostIds 批量统计多个动态的点赞数
	CountLikesByPostIds(postIds []int64) (map[int64]int64, error)
	// FindLikedPostIds 查找用户在给定动态集合中点赞过的动态 ID
	FindLikedPostIds(userId int64, postIds []int64) ([]int64, error)
}
