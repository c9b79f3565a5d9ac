package model

import (
	"time"
)

// PostComment 评论，ParentID 为 0 表示直接评论帖子
type PostComment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index:idx_post_id" json:"postId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	ParentID  uint64    `gorm:"not null;default:0" json:"parentId"`
	Content   string    `gorm:"type:varchar(4000);not null" json:"content"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostComment) TableName() string {
	return "post_comments"
}

// CommentAuthors 删除鉴权所需的评论作者与帖子作者
type CommentAuthors struct {
	CommentID    uint64
	PostID       uint64
	AuthorID     uint64
	PostAuthorID uint64
}
