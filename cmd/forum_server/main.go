package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum_server/internal/config"
	"forum_server/internal/dao/mysql"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/handler"
	"forum_server/internal/https_server"
	"forum_server/internal/infrastructure/logger"
	"forum_server/internal/infrastructure/mq"
	"forum_server/internal/service"
	"forum_server/pkg/constants"
	"forum_server/pkg/util/jwt"
	"forum_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zap.L().Sync()

	// 3. 初始化 ID 生成与 JWT
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)

	// 4. 初始化数据库
	repos, err := mysql.Init(&conf.MysqlConfig)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}

	// 5. 初始化 Redis
	cache, err := myredis.Init(&conf.RedisConfig)
	if err != nil {
		zap.L().Fatal("Redis 初始化失败", zap.Error(err))
	}

	// 6. 通知代理
	broker, err := newBroker(&conf.KafkaConfig)
	if err != nil {
		zap.L().Fatal("通知代理初始化失败", zap.Error(err))
	}
	dispatcher := mq.NewDispatcher(repos.Notification, cache)

	ctx, stop := context.WithCancel(context.Background())
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		broker.Start(ctx, dispatcher.Handle)
	}()

	// 7. Service、Handler、HTTP 服务器
	svc := service.NewServices(repos, cache, broker, conf.ModerationConfig)
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}
	engine := https_server.Init(conf, handler.NewHandlers(svc))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.SHUTDOWN_TIMEOUT*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}

	// 先停止发布，再等消费端处理完已入队的通知
	if err := broker.Close(); err != nil {
		zap.L().Error("broker close failed", zap.Error(err))
	}
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
	}
	stop()
	cache.Close()

	zap.L().Info("服务器已关闭")
}

// newBroker 按 messageMode 选择通知代理
func newBroker(conf *config.KafkaConfig) (mq.Broker, error) {
	if conf.MessageMode == "kafka" {
		if err := mq.EnsureTopic(conf); err != nil {
			return nil, err
		}
		return mq.NewKafkaBroker(conf), nil
	}
	return mq.NewChannelBroker(constants.CHANNEL_SIZE), nil
}
