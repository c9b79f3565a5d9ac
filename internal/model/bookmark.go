package model

import (
	"time"
)

// Bookmark 帖子收藏
type Bookmark struct {
	PostID    uint64    `gorm:"primaryKey" json:"postId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
