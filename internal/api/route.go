package api

import (
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/logger"
	"Quill/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(group.AllowOrigins...))
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(group.TokenRevoked)
	authOpt := middleware.AuthOptionalMiddleware(group.TokenRevoked)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/:post_id", authOpt, group.CommentHandler.ListComments)

			authGroup := commentGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				authGroup.POST("/:comment_id/like", group.CommentHandler.LikeComment)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/:post_id/state", authOpt, group.PostActionHandler.GetPostActionState)

			authGroup := postGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/:post_id/like", group.PostActionHandler.LikePost)
				authGroup.POST("/:post_id/bookmark", group.PostActionHandler.BookmarkPost)
				authGroup.DELETE("/:post_id", group.PostActionHandler.DeletePost)
			}
		}

		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.Use(auth)
			reportGroup.POST("", group.ReportHandler.CreateReport)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(auth)
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, middleware.CheckRoles(service.AdminRoleName))
		{
			adminGroup.POST("/jobs/purge", group.JobHandler.RunPurge)
		}
	}

	return r
}
