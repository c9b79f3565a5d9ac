package repository

import (
	"Quill/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AssociationRepo (subject, user) 复合主键关联表：帖子点赞、评论点赞、收藏
type AssociationRepo interface {
	Exists(ctx context.Context, subjectID, userID uint64) (bool, error)
	// Create 主键冲突时返回 ErrDuplicate
	Create(ctx context.Context, subjectID, userID uint64) error
	// Delete 返回是否真的删除了一行
	Delete(ctx context.Context, subjectID, userID uint64) (bool, error)
	Count(ctx context.Context, subjectID uint64) (int64, error)
	CountBatch(ctx context.Context, subjectIDs []uint64) (map[uint64]int64, error)
	FilterExisting(ctx context.Context, userID uint64, subjectIDs []uint64) (map[uint64]bool, error)
	// PurgeDeletedSubjects 清理主体已被软删除的关联行
	PurgeDeletedSubjects(ctx context.Context) (int64, error)
}

type associationSpec struct {
	name        string
	column      string
	parentTable string
	newRow      func(subjectID, userID uint64, at time.Time) any
}

type AssociationRepoImpl struct {
	db   *gorm.DB
	spec associationSpec
}

func NewPostLikeRepo(db *gorm.DB) AssociationRepo {
	return &AssociationRepoImpl{db: db, spec: associationSpec{
		name:        "post like",
		column:      "post_id",
		parentTable: model.Post{}.TableName(),
		newRow: func(subjectID, userID uint64, at time.Time) any {
			return &model.Like{PostID: subjectID, UserID: userID, CreatedAt: at}
		},
	}}
}

func NewCommentLikeRepo(db *gorm.DB) AssociationRepo {
	return &AssociationRepoImpl{db: db, spec: associationSpec{
		name:        "comment like",
		column:      "comment_id",
		parentTable: model.PostComment{}.TableName(),
		newRow: func(subjectID, userID uint64, at time.Time) any {
			return &model.CommentLike{CommentID: subjectID, UserID: userID, CreatedAt: at}
		},
	}}
}

func NewBookmarkRepo(db *gorm.DB) AssociationRepo {
	return &AssociationRepoImpl{db: db, spec: associationSpec{
		name:        "bookmark",
		column:      "post_id",
		parentTable: model.Post{}.TableName(),
		newRow: func(subjectID, userID uint64, at time.Time) any {
			return &model.Bookmark{PostID: subjectID, UserID: userID, CreatedAt: at}
		},
	}}
}

func (s *AssociationRepoImpl) model() any {
	return s.spec.newRow(0, 0, time.Time{})
}

func (s *AssociationRepoImpl) Exists(ctx context.Context, subjectID, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(s.model()).
		Where(s.spec.column+" = ? AND user_id = ?", subjectID, userID).
		Limit(1).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "check %s", s.spec.name)
	}
	return count > 0, nil
}

func (s *AssociationRepoImpl) Create(ctx context.Context, subjectID, userID uint64) error {
	err := s.db.WithContext(ctx).Create(s.spec.newRow(subjectID, userID, time.Now())).Error
	if isDuplicateError(err) {
		return ErrDuplicate
	}
	return errors.Wrapf(err, "create %s", s.spec.name)
}

func (s *AssociationRepoImpl) Delete(ctx context.Context, subjectID, userID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where(s.spec.column+" = ? AND user_id = ?", subjectID, userID).
		Delete(s.model())
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete %s", s.spec.name)
	}
	return res.RowsAffected > 0, nil
}

func (s *AssociationRepoImpl) Count(ctx context.Context, subjectID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(s.model()).
		Where(s.spec.column+" = ?", subjectID).
		Count(&count).Error
	return count, errors.Wrapf(err, "count %s", s.spec.name)
}

func (s *AssociationRepoImpl) CountBatch(ctx context.Context, subjectIDs []uint64) (map[uint64]int64, error) {
	res := make(map[uint64]int64, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return res, nil
	}

	var rows []struct {
		SubjectID uint64
		Cnt       int64
	}
	err := s.db.WithContext(ctx).Model(s.model()).
		Select(s.spec.column+" AS subject_id, COUNT(*) AS cnt").
		Where(s.spec.column+" IN ?", subjectIDs).
		Group(s.spec.column).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "count %s batch", s.spec.name)
	}
	for _, r := range rows {
		res[r.SubjectID] = r.Cnt
	}
	return res, nil
}

func (s *AssociationRepoImpl) FilterExisting(ctx context.Context, userID uint64, subjectIDs []uint64) (map[uint64]bool, error) {
	res := make(map[uint64]bool)
	if userID == 0 || len(subjectIDs) == 0 {
		return res, nil
	}

	var found []uint64
	err := s.db.WithContext(ctx).Model(s.model()).
		Where("user_id = ? AND "+s.spec.column+" IN ?", userID, subjectIDs).
		Pluck(s.spec.column, &found).Error
	if err != nil {
		return nil, errors.Wrapf(err, "filter %s", s.spec.name)
	}
	for _, id := range found {
		res[id] = true
	}
	return res, nil
}

func (s *AssociationRepoImpl) PurgeDeletedSubjects(ctx context.Context) (int64, error) {
	deleted := s.db.Table(s.spec.parentTable).Select("id").Where("is_deleted = ?", true)
	res := s.db.WithContext(ctx).
		Where(s.spec.column+" IN (?)", deleted).
		Delete(s.model())
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "purge %s", s.spec.name)
	}
	return res.RowsAffected, nil
}
