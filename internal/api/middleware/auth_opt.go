package middleware

import (
	"Quill/internal/pkg/security"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，缺失、无效或已注销则为匿名
func AuthOptionalMiddleware(revoked RevokedChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			setActor(c, 0, nil)
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil || isRevoked(c, revoked, token) {
			setActor(c, 0, nil)
		} else {
			setActor(c, claims.UserID, claims.Roles)
		}
		c.Next()
	}
}

// isRevoked 查询失败按已注销处理，读接口降级为匿名
func isRevoked(c *gin.Context, revoked RevokedChecker, token string) bool {
	if revoked == nil {
		return false
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return true
	}
	res, err := revoked(c.Request.Context(), signature)
	if err != nil {
		log.WarnContext(c.Request.Context(), "check token revocation failed", "err", err)
		return true
	}
	return res
}
