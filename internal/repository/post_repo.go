package repository

import (
	"Quill/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostRepo 帖子只读上下文与删除
type PostRepo interface {
	// GetPost 帖子不存在或已删除时返回 nil, nil
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	DeletePost(ctx context.Context, id uint64) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get post")
	}
	return &post, nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete post")
	}
	return res.RowsAffected > 0, nil
}
