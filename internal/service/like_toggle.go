package service

import (
	"Quill/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

// LikeToggle 对 (subject, user) 关联做翻转。
// 并发冲突由存储主键裁决，冲突时重新读取并返回实际持久化的状态。
type LikeToggle struct {
	repo repository.AssociationRepo
	name string
}

func NewLikeToggle(repo repository.AssociationRepo, name string) *LikeToggle {
	return &LikeToggle{repo: repo, name: name}
}

// Toggle 存在则删除返回 false，不存在则插入返回 true
func (s *LikeToggle) Toggle(ctx context.Context, actor Actor, subjectID uint64) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, ErrUnauthenticated
	}
	userID := actor.UserID

	exists, err := s.repo.Exists(ctx, subjectID, userID)
	if err != nil {
		return false, storeErr(s.name+".exists", err)
	}

	if exists {
		removed, err := s.repo.Delete(ctx, subjectID, userID)
		if err != nil {
			return false, storeErr(s.name+".delete", err)
		}
		if removed {
			return false, nil
		}
		log.InfoContext(ctx, "toggle lost delete race, re-reading", "kind", s.name, "subject", subjectID, "user", userID)
		return s.observe(ctx, subjectID, userID)
	}

	err = s.repo.Create(ctx, subjectID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		log.InfoContext(ctx, "toggle lost insert race, re-reading", "kind", s.name, "subject", subjectID, "user", userID)
		return s.observe(ctx, subjectID, userID)
	}
	return false, storeErr(s.name+".create", err)
}

func (s *LikeToggle) observe(ctx context.Context, subjectID, userID uint64) (bool, error) {
	exists, err := s.repo.Exists(ctx, subjectID, userID)
	if err != nil {
		return false, storeErr(s.name+".exists", err)
	}
	return exists, nil
}
