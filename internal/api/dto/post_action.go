package dto

// LikeStateDTO 点赞翻转结果
type LikeStateDTO struct {
	Liked bool `json:"liked"`
}

// BookmarkStateDTO 收藏翻转结果
type BookmarkStateDTO struct {
	Bookmarked bool `json:"bookmarked"`
}

// PostActionStateDTO 帖子交互状态数据
type PostActionStateDTO struct {
	PostID        uint64 `json:"post_id"`
	LikeCount     int64  `json:"like_count"`
	BookmarkCount int64  `json:"bookmark_count"`
	CommentCount  int64  `json:"comment_count"`
	IsLiked       bool   `json:"is_liked"`
	IsBookmarked  bool   `json:"is_bookmarked"`
}
