// Package chat 实现私信系统的实时通知层
// presence.go
// 核心职责：在线状态登记表
// 1. 维护 用户ID -> 连接集合 的映射，同一用户可有多个设备同时在线
// 2. Join 时校验连接声明的身份与认证身份一致
// 3. 连接断开或显式登出时清理登记
package chat

import (
	"sync"

	"go.uber.org/zap"

	"letstalk_server/pkg/errorx"
)

// PresenceRegistry 在线状态登记表
// 以用户 ID 为房间，记录该用户当前所有活跃连接
type PresenceRegistry struct {
	mu    sync.RWMutex
	rooms map[int64]map[*UserConn]struct{}
}

// NewPresenceRegistry 创建在线状态登记表
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		rooms: make(map[int64]map[*UserConn]struct{}),
	}
}

// Join 将连接加入其声明用户的房间
// authedId 为认证层确认的用户身份，与连接声明的 UserId 不一致时拒绝加入
// authedId: 认证用户 ID
// conn: 待登记的连接
// 返回: 身份不匹配时返回 CodePermissionDenied
func (p *PresenceRegistry) Join(authedId int64, conn *UserConn) error {
	if conn == nil {
		return errorx.ErrInvalidParam
	}
	if conn.UserId != authedId {
		zap.L().Warn("presence join rejected",
			zap.Int64("authed_id", authedId),
			zap.Int64("claimed_id", conn.UserId))
		return errorx.Newf(errorx.CodePermissionDenied, "无权加入用户%d的房间", conn.UserId)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	room, ok := p.rooms[conn.UserId]
	if !ok {
		room = make(map[*UserConn]struct{})
		p.rooms[conn.UserId] = room
	}
	room[conn] = struct{}{}
	zap.L().Info("presence join",
		zap.Int64("user_id", conn.UserId),
		zap.String("conn_id", conn.ConnId),
		zap.Int("devices", len(room)))
	return nil
}

// Leave 将单个连接移出房间
// 对未登记的连接调用无副作用，操作幂等
func (p *PresenceRegistry) Leave(conn *UserConn) {
	if conn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	room, ok := p.rooms[conn.UserId]
	if !ok {
		return
	}
	if _, exists := room[conn]; !exists {
		return
	}
	delete(room, conn)
	// 最后一个连接离开时回收房间
	if len(room) == 0 {
		delete(p.rooms, conn.UserId)
	}
	zap.L().Info("presence leave",
		zap.Int64("user_id", conn.UserId),
		zap.String("conn_id", conn.ConnId))
}

// LeaveAll 移出用户的全部连接并返回被移出的连接
// 用于强制登出场景
func (p *PresenceRegistry) LeaveAll(userId int64) []*UserConn {
	p.mu.Lock()
	defer p.mu.Unlock()
	room, ok := p.rooms[userId]
	if !ok {
		return nil
	}
	conns := make([]*UserConn, 0, len(room))
	for conn := range room {
		conns = append(conns, conn)
	}
	delete(p.rooms, userId)
	return conns
}

// ConnectionsFor 获取用户当前所有活跃连接的快照
// 用户不在线时返回空切片
func (p *PresenceRegistry) ConnectionsFor(userId int64) []*UserConn {
	p.mu.RLock()
	defer p.mu.RUnlock()
	room, ok := p.rooms[userId]
	if !ok {
		return nil
	}
	conns := make([]*UserConn, 0, len(room))
	for conn := range room {
		conns = append(conns, conn)
	}
	return conns
}

// OnlineCount 统计用户的在线连接数
func (p *PresenceRegistry) OnlineCount(userId int64) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rooms[userId])
}
