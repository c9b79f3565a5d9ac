package model

import (
	"time"
)

// Report 内容举报，PostID 与 CommentID 二选一
type Report struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ReporterID uint64    `gorm:"not null;index:idx_reporter" json:"reporterId"`
	PostID     uint64    `gorm:"not null;default:0" json:"postId"`
	CommentID  uint64    `gorm:"not null;default:0" json:"commentId"`
	Reason     string    `gorm:"type:varchar(2000);not null" json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}
