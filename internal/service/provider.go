// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"letstalk_server/internal/dao/mysql"
	myredis "letstalk_server/internal/dao/redis"
	"letstalk_server/internal/service/message"
	"letstalk_server/internal/service/post"
	"letstalk_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User    UserService    // 用户 Service
	Message MessageService // 消息 Service
	Post    PostService    // 动态 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存服务和通知分发器
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// cache: 异步缓存服务
// notifier: 通知分发器（实时通知层实现）
// 返回: Services 聚合指针
func NewServices(repos *mysql.Repositories, cache myredis.AsyncCacheService, notifier message.Notifier) *Services {
	userSvc := user.NewUserService(repos, cache)
	messageSvc := message.NewMessageService(repos, cache, notifier)
	postSvc := post.NewPostService(repos)

	return &Services{
		User:    userSvc,
		Message: messageSvc,
		Post:    postSvc,
	}
}
