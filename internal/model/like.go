package model

import (
	"time"
)

// Like 帖子点赞
type Like struct {
	PostID    uint64    `gorm:"primaryKey" json:"postId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
