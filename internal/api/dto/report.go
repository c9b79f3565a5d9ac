package dto

// ReportCreateDTO 举报请求，post_id 与 comment_id 二选一
type ReportCreateDTO struct {
	PostID    uint64 `json:"post_id"`
	CommentID uint64 `json:"comment_id"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

type ReportDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	CommentID uint64 `json:"comment_id"`
	Reason    string `json:"reason"`
}
