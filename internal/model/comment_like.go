package model

import (
	"time"
)

type CommentLike struct {
	CommentID uint64    `gorm:"primaryKey" json:"commentId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
