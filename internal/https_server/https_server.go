// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"forum_server/internal/config"
	"forum_server/internal/handler"
	"forum_server/internal/infrastructure/logger"
	"forum_server/internal/infrastructure/middleware"
	"forum_server/internal/router"

	"github.com/gin-contrib/cors" // CORS 跨域中间件
	"github.com/gin-gonic/gin"
)

// Init 初始化 HTTP/HTTPS 服务器并返回 Gin 引擎实例
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 注册日志和恢复中间件
//  3. 配置 CORS 跨域规则与安全响应头
//  4. 按 IP 限流
//  5. 注册业务路由
func Init(conf *config.Config, handlers *handler.Handlers) *gin.Engine {
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 允许所有来源（生产环境应指定具体域名）
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	engine.Use(middleware.SecureHeaders(conf.MainConfig.Mode != "release"))

	// 如果由 Nginx 处理 SSL 则保持 forceTLS = false
	if conf.MainConfig.ForceTLS {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	engine.Use(middleware.RateLimit(conf.RateLimitConfig.RPS, conf.RateLimitConfig.Burst))

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
