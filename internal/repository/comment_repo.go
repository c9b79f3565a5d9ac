package repository

import (
	"Quill/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	// GetComments 按 id 升序返回帖子下未删除的评论，自增 id 即写入顺序
	GetComments(ctx context.Context, postID uint64) ([]*model.PostComment, error)
	GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error)
	CreateComment(ctx context.Context, comment *model.PostComment) error
	// DeleteComment 只软删除这一行，子评论保留
	DeleteComment(ctx context.Context, commentID uint64) (bool, error)
	GetCommentAuthors(ctx context.Context, commentID uint64) (*model.CommentAuthors, error)
	CountComments(ctx context.Context, postID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetComments(ctx context.Context, postID uint64) ([]*model.PostComment, error) {
	var comments []*model.PostComment
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "get comments")
	}
	return comments, nil
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error) {
	var comment model.PostComment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get comment")
	}
	return &comment, nil
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.PostComment) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete comment")
	}
	return res.RowsAffected > 0, nil
}

func (s *CommentRepoImpl) GetCommentAuthors(ctx context.Context, commentID uint64) (*model.CommentAuthors, error) {
	var rows []model.CommentAuthors
	err := s.db.WithContext(ctx).
		Table("post_comments AS c").
		Select("c.id AS comment_id, c.post_id AS post_id, c.user_id AS author_id, p.user_id AS post_author_id").
		Joins("JOIN posts AS p ON p.id = c.post_id").
		Where("c.id = ? AND c.is_deleted = ?", commentID, false).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "get comment authors")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *CommentRepoImpl) CountComments(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count, errors.Wrap(err, "count comments")
}
