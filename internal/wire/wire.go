package wire

import (
	"Quill/internal/api"
	"Quill/internal/api/config"
	"Quill/internal/api/handler"
	"Quill/internal/job"
	"Quill/internal/pkg/cron"
	"Quill/internal/pkg/kafka"
	"Quill/internal/pkg/redis"
	"Quill/internal/repository"
	"Quill/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // 未启用消费时为 nil
	Publisher    *kafka.StalePublisher  // 未启用 Kafka 时为 nil
}

func BuildApplication(db *gorm.DB, cfg *config.Config, storage service.ObjectStorage) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	likeRepo := repository.NewPostLikeRepo(db)
	bookmarkRepo := repository.NewBookmarkRepo(db)
	commentLikeRepo := repository.NewCommentLikeRepo(db)
	reportRepo := repository.NewReportRepo(db)

	viewCache := redis.NewViewCache(redis.Rdb, time.Duration(cfg.Comment.ViewCacheTTL)*time.Second)
	locker := redis.NewActionLocker()

	stale := service.Invalidators{viewCache}
	var publisher *kafka.StalePublisher
	if cfg.Kafka.Enable {
		var err error
		publisher, err = kafka.NewStalePublisher(cfg.Kafka, cfg.KafkaStale.Topic)
		if err != nil {
			return nil, err
		}
		stale = append(stale, publisher)
	}

	commentService := service.NewCommentService(commentRepo, postRepo, commentLikeRepo, viewCache, stale, service.CommentOptions{
		MaxDepth:  cfg.Comment.MaxDepth,
		MaxLength: cfg.Comment.MaxLength,
	})
	postActionService := service.NewPostActionService(postRepo, commentRepo, likeRepo, bookmarkRepo, commentLikeRepo, stale)
	reportService := service.NewReportService(reportRepo, postRepo, commentRepo, locker)
	mediaService := service.NewMediaService(storage, cfg.Upload.MaxSize)

	purgeJob := job.NewPurgeJob(locker,
		job.PurgeTarget{Name: "likes", Repo: likeRepo},
		job.PurgeTarget{Name: "bookmarks", Repo: bookmarkRepo},
		job.PurgeTarget{Name: "comment_likes", Repo: commentLikeRepo},
	)

	handlers := &api.HandlersGroup{
		CommentHandler:    handler.NewCommentHandler(commentService, postActionService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		ReportHandler:     handler.NewReportHandler(reportService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		JobHandler:        handler.NewJobHandler(purgeJob),
		TokenRevoked:      redis.IsTokenRevoked,
		AllowOrigins:      cfg.Server.AllowOrigins,
	}
	router := api.SetupRouter(handlers)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable && cfg.KafkaStale.Consume {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, viewCache)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cron.NewCronManager(cfg.Cron.PurgeSpec, purgeJob),
		KafkaManager: kafkaMgr,
		Publisher:    publisher,
	}, nil
}
