package dto

import "time"

// CommentCreateDTO 创建评论请求，ParentID 为 0 表示直接评论帖子
type CommentCreateDTO struct {
	PostID   uint64 `json:"post_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID uint64 `json:"parent_id"`
}

// CommentDTO 评论详情
type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	ParentID  uint64    `json:"parent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNodeDTO 评论树节点
type CommentNodeDTO struct {
	CommentDTO
	Depth     int               `json:"depth"`
	CanReply  bool              `json:"can_reply"`
	LikeCount int64             `json:"like_count"`
	IsLiked   bool              `json:"is_liked"`
	Children  []*CommentNodeDTO `json:"children"`
}

// CommentListDTO 帖子评论列表
type CommentListDTO struct {
	PostID   uint64            `json:"post_id"`
	Total    int               `json:"total"`
	MaxDepth int               `json:"max_depth"`
	Comments []*CommentNodeDTO `json:"comments"`
}
