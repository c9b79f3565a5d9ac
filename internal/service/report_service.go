package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/util"
	"Quill/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

const (
	reportWindow          = 24 * time.Hour
	DefaultReportMaxChars = 500
)

// ActionLocker 限制同一用户对同一对象的重复操作
type ActionLocker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type ReportService interface {
	CreateReport(ctx context.Context, actor Actor, req *dto.ReportCreateDTO) (*dto.ReportDTO, error)
}

type reportServiceImpl struct {
	reportRepo  repository.ReportRepo
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	locker      ActionLocker
}

func NewReportService(
	reportRepo repository.ReportRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	locker ActionLocker,
) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		locker:      locker,
	}
}

func (s *reportServiceImpl) CreateReport(ctx context.Context, actor Actor, req *dto.ReportCreateDTO) (*dto.ReportDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if req == nil || (req.PostID == 0) == (req.CommentID == 0) {
		return nil, ErrReportTargetMissing
	}

	reason := util.SanitizeText(req.Reason)
	if reason == "" {
		return nil, ErrReportReasonEmpty
	}
	if util.RuneLen(reason) > DefaultReportMaxChars {
		return nil, ErrContentTooLong
	}

	if err := s.checkTarget(ctx, req); err != nil {
		return nil, err
	}

	lockKey := reportLockKey(actor.UserID, req)
	if s.locker != nil {
		ok, err := s.locker.TryAcquire(ctx, lockKey, reportWindow)
		if err != nil {
			return nil, storeErr("report.lock", err)
		}
		if !ok {
			return nil, ErrActionDuplicate
		}
	}

	report := &model.Report{
		ReporterID: actor.UserID,
		PostID:     req.PostID,
		CommentID:  req.CommentID,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		if s.locker != nil {
			if rErr := s.locker.Release(ctx, lockKey); rErr != nil {
				log.WarnContext(ctx, "release report lock failed", "key", lockKey, "err", rErr)
			}
		}
		return nil, storeErr("report.create", err)
	}

	log.InfoContext(ctx, "report created", "report_id", report.ID, "post_id", req.PostID, "comment_id", req.CommentID)
	return &dto.ReportDTO{
		ID:        report.ID,
		PostID:    report.PostID,
		CommentID: report.CommentID,
		Reason:    report.Reason,
	}, nil
}

func (s *reportServiceImpl) checkTarget(ctx context.Context, req *dto.ReportCreateDTO) error {
	if req.PostID != 0 {
		post, err := s.postRepo.GetPost(ctx, req.PostID)
		if err != nil {
			return storeErr("post.get", err)
		}
		if post == nil {
			return ErrPostNotFound
		}
		return nil
	}

	comment, err := s.commentRepo.GetCommentByID(ctx, req.CommentID)
	if err != nil {
		return storeErr("comment.get", err)
	}
	if comment == nil {
		return ErrPostCommentNotFound
	}
	return nil
}

func reportLockKey(userID uint64, req *dto.ReportCreateDTO) string {
	if req.PostID != 0 {
		return fmt.Sprintf("%s%d:post:%d", consts.ReportLock, userID, req.PostID)
	}
	return fmt.Sprintf("%s%d:comment:%d", consts.ReportLock, userID, req.CommentID)
}
