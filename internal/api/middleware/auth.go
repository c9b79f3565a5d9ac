package middleware

import (
	"Quill/internal/pkg/response"
	"Quill/internal/pkg/security"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// RevokedChecker 判断 token 签名是否已注销
type RevokedChecker func(ctx context.Context, signature string) (bool, error)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(revoked RevokedChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked(c.Request.Context(), signature)
			if err != nil {
				log.ErrorContext(c.Request.Context(), "check token revocation failed", "err", err)
				response.Fail(c, response.InternalServerError, "未知错误")
				c.Abort()
				return
			}
			if isRevoked {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
				c.Abort()
				return
			}
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		setActor(c, claims.UserID, claims.Roles)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
