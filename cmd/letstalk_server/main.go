package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"letstalk_server/internal/config"
	dao "letstalk_server/internal/dao/mysql"
	myredis "letstalk_server/internal/dao/redis"
	"letstalk_server/internal/handler"
	"letstalk_server/internal/https_server"
	"letstalk_server/internal/infrastructure/logger"
	"letstalk_server/internal/service"
	"letstalk_server/internal/service/chat"
	"letstalk_server/pkg/util/jwt"
	"letstalk_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	cacheService := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 6. 初始化雪花算法节点
	snowflake.Init()
	zap.L().Info("雪花算法初始化成功")

	// 7. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}
	zap.L().Info("翻译器初始化成功")

	// 8. 初始化通知服务器（根据配置选择 channel 或 kafka 模式）
	chatServer := chat.NewChatServer(conf.KafkaConfig.EventMode)
	zap.L().Info("通知服务器初始化成功", zap.String("mode", conf.KafkaConfig.EventMode))

	// 9. 初始化 Service 层 (依赖注入)
	services := service.NewServices(repos, cacheService, chatServer.Dispatcher)
	zap.L().Info("Service 层初始化成功")

	// 10. 初始化 Handler 层并装配 HTTP 服务器
	handlers := handler.NewHandlers(services, chatServer)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 11. 启动服务
	go chatServer.Start()

	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务已启动", zap.String("host", host), zap.Int("port", port))

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
