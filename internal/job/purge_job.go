package job

import (
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/logger"
	"Quill/internal/repository"
	"Quill/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	purgeTimeout = 10 * time.Minute
	purgeLockTTL = 15 * time.Minute
)

// PurgeTarget 一张需要清理的关联表
type PurgeTarget struct {
	Name string
	Repo repository.AssociationRepo
}

// PurgeJob 清理指向已删除帖子或评论的点赞与收藏
type PurgeJob struct {
	targets []PurgeTarget
	locker  service.ActionLocker
}

func NewPurgeJob(locker service.ActionLocker, targets ...PurgeTarget) *PurgeJob {
	return &PurgeJob{targets: targets, locker: locker}
}

// Run 供 cron 调用
func (s *PurgeJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), "job-purge-"+uuid.NewString()), purgeTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		log.ErrorContext(ctx, "purge job failed", "err", err)
	}
}

// RunOnce 执行一次清理，多实例间通过锁保证同一时间只有一个执行
func (s *PurgeJob) RunOnce(ctx context.Context) (int64, error) {
	if s.locker != nil {
		ok, err := s.locker.TryAcquire(ctx, consts.PurgeLock, purgeLockTTL)
		if err != nil {
			return 0, err
		}
		if !ok {
			log.InfoContext(ctx, "purge job is running elsewhere, skip")
			return 0, nil
		}
		defer func() {
			if err := s.locker.Release(context.WithoutCancel(ctx), consts.PurgeLock); err != nil {
				log.WarnContext(ctx, "release purge lock failed", "err", err)
			}
		}()
	}

	var total int64
	for _, t := range s.targets {
		n, err := t.Repo.PurgeDeletedSubjects(ctx)
		if err != nil {
			log.ErrorContext(ctx, "purge rows failed", "table", t.Name, "err", err)
			return total, err
		}
		total += n
		log.InfoContext(ctx, "purge rows success", "table", t.Name, "rows", n)
	}
	return total, nil
}
