package api

import (
	"Quill/internal/api/handler"
	"Quill/internal/api/middleware"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	CommentHandler    *handler.CommentHandler
	PostActionHandler *handler.PostActionHandler
	ReportHandler     *handler.ReportHandler
	MediaHandler      *handler.MediaHandler
	JobHandler        *handler.JobHandler

	// TokenRevoked 为空时不检查注销状态
	TokenRevoked middleware.RevokedChecker
	AllowOrigins []string
}
