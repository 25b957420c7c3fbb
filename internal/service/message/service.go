// Package message 实现私信消息的业务逻辑
// 核心职责：
// 1. 发送消息：落库后发布 message 和 unread 事件
// 2. 会话查询：带 Redis 缓存的双向消息列表
// 3. 标记已读：seen_at 单次跃迁，随后发布 unread 和 seen 事件
// 4. 未读计数：始终实时查库，保证计数不陈旧
// 所有事件都在数据提交之后发布，发布失败不影响业务结果
package message

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"letstalk_server/internal/dao/mysql"
	myredis "letstalk_server/internal/dao/redis"
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/dto/respond"
	"letstalk_server/internal/model"
	"letstalk_server/pkg/constants"
	"letstalk_server/pkg/errorx"
	"letstalk_server/pkg/util/snowflake"
)

// Notifier 通知发布接口
// 由实时通知层实现，业务层在数据提交后调用
// 所有方法都是尽力而为，不返回错误
type Notifier interface {
	// MessageCreated 新消息已提交
	MessageCreated(msg respond.MessageRespond)
	// MessagesSeen 一批消息被标记已读
	MessagesSeen(actorId, otherId int64, messageIds []int64)
	// UnreadChanged 用户的未读总数发生变化
	UnreadChanged(userId, count int64)
}

// messageService 消息业务逻辑实现
type messageService struct {
	repos    *mysql.Repositories
	cache    myredis.AsyncCacheService
	notifier Notifier
}

// NewMessageService 构造函数
func NewMessageService(repos *mysql.Repositories, cache myredis.AsyncCacheService, notifier Notifier) *messageService {
	return &messageService{repos: repos, cache: cache, notifier: notifier}
}

// threadCacheKey 生成会话缓存 Key
// 两个用户 ID 按大小排序，保证 A-B 和 B-A 命中同一个 Key
func threadCacheKey(userOneId, userTwoId int64) string {
	if userOneId > userTwoId {
		userOneId, userTwoId = userTwoId, userOneId
	}
	return fmt.Sprintf("thread_messages_%d_%d", userOneId, userTwoId)
}

// toRespond 将消息模型转换为响应对象
func toRespond(message model.Message, senderName string) respond.MessageRespond {
	rsp := respond.MessageRespond{
		Id:         message.Uuid,
		SenderId:   message.SenderId,
		SenderName: senderName,
		ReceiverId: message.ReceiverId,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt.Format("2006-01-02 15:04:05"),
		Status:     message.Status(),
	}
	if message.SeenAt.Valid {
		seenAt := message.SeenAt.Time.Format("2006-01-02 15:04:05")
		rsp.SeenAt = &seenAt
	}
	return rsp
}

// invalidateThreadCache 异步失效会话缓存
// 消息写入后旧缓存立即作废，下一次查询回源数据库重建
func (m *messageService) invalidateThreadCache(userOneId, userTwoId int64) {
	if m.cache == nil {
		return
	}
	key := threadCacheKey(userOneId, userTwoId)
	m.cache.SubmitTask(func() {
		if err := m.cache.Delete(context.Background(), key); err != nil {
			zap.L().Error("invalidate thread cache error", zap.String("key", key), zap.Error(err))
		}
	})
}

// Send 发送私信
// 1. 校验：不能发给自己，内容去除首尾空白后不能为空
// 2. 校验发送方和接收方存在
// 3. 生成消息 ID 并落库
// 4. 失效会话缓存，发布 message 事件和接收方的 unread 事件
// senderId: 发送方用户 ID（来自认证上下文）
// 返回: 已提交消息的响应对象
func (m *messageService) Send(senderId int64, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	if req.ReceiverId == senderId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能给自己发送消息")
	}

	sender, err := m.repos.User.FindById(senderId)
	if err != nil {
		return nil, err
	}
	if _, err := m.repos.User.FindById(req.ReceiverId); err != nil {
		return nil, err
	}

	message := model.Message{
		Uuid:       snowflake.GenerateID(),
		SenderId:   senderId,
		ReceiverId: req.ReceiverId,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := m.repos.Message.Create(&message); err != nil {
		zap.L().Error("create message error", zap.Error(err))
		return nil, err
	}

	rsp := toRespond(message, sender.DisplayName)

	// 数据已提交，以下全部为尽力而为的后置动作
	m.invalidateThreadCache(senderId, req.ReceiverId)
	if m.notifier != nil {
		m.notifier.MessageCreated(rsp)
		// 未读计数实时查库，查询失败只影响本次通知
		if unread, err := m.repos.Message.CountUnseen(req.ReceiverId); err != nil {
			zap.L().Error("count unseen after send error",
				zap.Int64("receiver_id", req.ReceiverId), zap.Error(err))
		} else {
			m.notifier.UnreadChanged(req.ReceiverId, unread)
		}
	}

	return &rsp, nil
}

// ListThread 获取与指定用户的会话消息列表
// 双向消息按 created_at 升序，时间相同按消息 ID 升序
// 结果经 Redis 缓存，消息写入和已读操作都会使缓存失效
// userId: 调用方用户 ID
// otherId: 会话对端用户 ID
func (m *messageService) ListThread(userId, otherId int64) ([]respond.MessageRespond, error) {
	if _, err := m.repos.User.FindById(otherId); err != nil {
		return nil, err
	}

	cacheKey := threadCacheKey(userId, otherId)
	if m.cache != nil {
		rspString, err := m.cache.GetOrError(context.Background(), cacheKey)
		if err == nil {
			var rsp []respond.MessageRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err != nil {
				zap.L().Error("json unmarshal cache error", zap.Error(err))
				// 缓存解析失败，继续查数据库
			} else {
				return rsp, nil
			}
		} else if errorx.GetCode(err) != errorx.CodeNotFound {
			zap.L().Error("redis get key error", zap.Error(err))
		}
	}

	// 缓存未命中或出错，查数据库
	messageList, err := m.repos.Message.FindThread(userId, otherId)
	if err != nil {
		zap.L().Error("find thread messages error", zap.Error(err))
		return nil, err
	}

	names, err := m.displayNames(userId, otherId)
	if err != nil {
		return nil, err
	}

	rspList := make([]respond.MessageRespond, 0, len(messageList))
	for _, message := range messageList {
		rspList = append(rspList, toRespond(message, names[message.SenderId]))
	}

	// 更新缓存
	if m.cache != nil {
		m.cache.SubmitTask(func() {
			jsonBytes, err := json.Marshal(rspList)
			if err != nil {
				zap.L().Error("json marshal error", zap.Error(err))
				return
			}
			if err := m.cache.Set(context.Background(), cacheKey, string(jsonBytes),
				time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
				zap.L().Error("redis set key error", zap.Error(err))
			}
		})
	}

	return rspList, nil
}

// MarkSeen 将对端发来的所有未读消息标记为已读
// 操作幂等：没有未读消息时 Updated 为 0，不发布 seen 事件
// 成功后：
//   - 始终向调用方发布 unread 事件（即使计数没有变化）
//   - 有消息发生跃迁时向对端发布 seen 事件
//
// userId: 调用方（接收方）用户 ID
func (m *messageService) MarkSeen(userId int64, req request.MarkSeenRequest) (*respond.MarkSeenRespond, error) {
	if _, err := m.repos.User.FindById(req.OtherId); err != nil {
		return nil, err
	}

	messageIds, err := m.repos.Message.MarkSeen(userId, req.OtherId, time.Now())
	if err != nil {
		zap.L().Error("mark seen error",
			zap.Int64("user_id", userId), zap.Int64("other_id", req.OtherId), zap.Error(err))
		return nil, err
	}

	// 计数必须反映本次跃迁后的状态，失败则整个操作失败
	unread, err := m.repos.Message.CountUnseen(userId)
	if err != nil {
		zap.L().Error("count unseen after mark seen error",
			zap.Int64("user_id", userId), zap.Error(err))
		return nil, err
	}

	if len(messageIds) > 0 {
		m.invalidateThreadCache(userId, req.OtherId)
	}
	if m.notifier != nil {
		m.notifier.UnreadChanged(userId, unread)
		if len(messageIds) > 0 {
			m.notifier.MessagesSeen(userId, req.OtherId, messageIds)
		}
	}

	return &respond.MarkSeenRespond{
		Updated:    int64(len(messageIds)),
		Unread:     unread,
		MessageIds: messageIds,
	}, nil
}

// CountUnread 获取调用方的未读消息总数
// 始终实时查库，不走缓存，保证计数不陈旧
func (m *messageService) CountUnread(userId int64) (*respond.UnreadCountRespond, error) {
	unread, err := m.repos.Message.CountUnseen(userId)
	if err != nil {
		zap.L().Error("count unseen error", zap.Int64("user_id", userId), zap.Error(err))
		return nil, err
	}
	return &respond.UnreadCountRespond{Unread: unread}, nil
}

// RecentMessages 获取调用方参与的最近消息
// 用于首页最近动态展示，按时间降序
func (m *messageService) RecentMessages(userId int64) ([]respond.MessageRespond, error) {
	messageList, err := m.repos.Message.FindRecentByUser(userId, constants.RECENT_MESSAGE_LIMIT)
	if err != nil {
		zap.L().Error("find recent messages error", zap.Int64("user_id", userId), zap.Error(err))
		return nil, err
	}

	// 收集涉及的发送方 ID，批量查询昵称
	senderIdSet := make(map[int64]struct{})
	for _, message := range messageList {
		senderIdSet[message.SenderId] = struct{}{}
	}
	senderIds := make([]int64, 0, len(senderIdSet))
	for id := range senderIdSet {
		senderIds = append(senderIds, id)
	}
	users, err := m.repos.User.FindByIds(senderIds)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.Id] = u.DisplayName
	}

	rspList := make([]respond.MessageRespond, 0, len(messageList))
	for _, message := range messageList {
		rspList = append(rspList, toRespond(message, names[message.SenderId]))
	}
	return rspList, nil
}

// displayNames 查询两个用户的昵称映射
func (m *messageService) displayNames(userOneId, userTwoId int64) (map[int64]string, error) {
	users, err := m.repos.User.FindByIds([]int64{userOneId, userTwoId})
	if err != nil {
		zap.L().Error("find users error", zap.Error(err))
		return nil, err
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.Id] = u.DisplayName
	}
	return names, nil
}
