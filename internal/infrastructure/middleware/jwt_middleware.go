package middleware

import (
	"errors"
	"net/http"
	"strings"

	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将用户 ID 存入上下文（key: user_id）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Token 格式错误，请使用 Bearer Token")
			return
		}

		claims, err := jwt.ParseTokenOfType(parts[1], jwt.SubjectAccess)
		if err != nil {
			if errors.Is(err, jwt.ErrWrongTokenType) {
				abortUnauthorized(c, "请使用 Access Token 访问此接口")
				return
			}
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}

		c.Set(constants.CtxUserID, claims.UserID)
		c.Next()
	}
}
