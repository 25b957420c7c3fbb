// Package message 提供私信消息数据访问层的具体实现
// 本文件实现 MessageRepository 接口，处理消息相关的数据库操作
package message

import (
	"time"

	"letstalk_server/internal/dao/mysql/internal"
	"letstalk_server/internal/model"

	"gorm.io/gorm"
)

// messageRepository MessageRepository 接口的实现
type messageRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewMessageRepository 创建 MessageRepository 实例
// db: GORM 数据库实例
// 返回: MessageRepository 接口实现
func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

// Create 创建新消息
// message: 消息结构体，调用前需设置好 Uuid
// 返回: 操作错误
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return internal.WrapDBError(err, "创建消息")
	}
	return nil
}

// FindThread 查找两个用户之间的双向消息
// 查找 A->B 和 B->A 的所有消息，按 created_at 升序
// created_at 相同时按 uuid 升序，保证排序稳定
// userOneId, userTwoId: 两个用户的 ID
// 返回: 消息列表和错误
func (r *messageRepository) FindThread(userOneId, userTwoId int64) ([]model.Message, error) {
	var messages []model.Message
	// 使用 OR 条件查找双向消息
	if err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId).
		Order("created_at ASC, uuid ASC").Find(&messages).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询会话消息 user1=%d user2=%d", userOneId, userTwoId)
	}
	return messages, nil
}

// FindRecentByUser 查找用户参与的最近消息
// 包含用户发送和接收的消息，按 created_at 降序取前 limit 条
// userId: 用户 ID
// limit: 最大返回条数
// 返回: 消息列表和错误
func (r *messageRepository) FindRecentByUser(userId int64, limit int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("sender_id = ? OR receiver_id = ?", userId, userId).
		Order("created_at DESC, uuid DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询最近消息 user=%d", userId)
	}
	return messages, nil
}

// MarkSeen 将 sender 发给 receiver 的未读消息标记为已读
// 在事务中先取出未读消息的 uuid，再统一更新 seen_at
// 已经是已读状态的消息不会被重复更新，操作幂等
// receiverId: 接收者（发起已读操作的用户）
// senderId: 发送者（会话对端）
// seenAt: 标记时间
// 返回: 本次发生跃迁的消息 uuid 列表和错误
func (r *messageRepository) MarkSeen(receiverId, senderId int64, seenAt time.Time) ([]int64, error) {
	var uuids []int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 1. 取出仍未读的消息 uuid
		if err := tx.Model(&model.Message{}).
			Where("receiver_id = ? AND sender_id = ? AND seen_at IS NULL", receiverId, senderId).
			Order("created_at ASC, uuid ASC").
			Pluck("uuid", &uuids).Error; err != nil {
			return err
		}
		if len(uuids) == 0 {
			return nil
		}
		// 2. 只更新仍为 NULL 的行，保证 seen_at 单次跃迁
		if err := tx.Model(&model.Message{}).
			Where("uuid IN ? AND seen_at IS NULL", uuids).
			Update("seen_at", seenAt).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "标记已读 receiver=%d sender=%d", receiverId, senderId)
	}
	return uuids, nil
}

// CountUnseen 统计用户的未读消息总数
// 统计所有发给该用户且 seen_at 为 NULL 的消息
// receiverId: 接收者用户 ID
// 返回: 未读数量和错误
func (r *messageRepository) CountUnseen(receiverId int64) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND seen_at IS NULL", receiverId).
		Count(&count).Error; err != nil {
		return 0, internal.WrapDBErrorf(err, "统计未读消息 receiver=%d", receiverId)
	}
	return count, nil
}
