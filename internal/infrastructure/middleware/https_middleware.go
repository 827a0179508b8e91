package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// secureHandler 把 unrolled/secure 适配为 gin 中间件
// Process 返回错误时（例如已经写出了重定向响应）终止处理链
func secureHandler(s *secure.Secure, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Process(c.Writer, c.Request); err != nil {
			zap.L().Debug(name+" aborted request", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.Abort()
			return
		}
		// secure 对非 2xx 的重定向会直接写响应
		if status := c.Writer.Status(); status >= 300 && status < 400 && c.Writer.Written() {
			c.Abort()
			return
		}
		c.Next()
	}
}

// TlsHandler 将 HTTP 请求重定向到 HTTPS
func TlsHandler(host string, port int) gin.HandlerFunc {
	return secureHandler(secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	}), "tls redirect")
}

// SecureHeaders 设置常用安全响应头
// isDevelopment 为 true 时 secure 不做任何检查，便于本地调试
func SecureHeaders(isDevelopment bool) gin.HandlerFunc {
	return secureHandler(secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         isDevelopment,
	}), "secure headers")
}
