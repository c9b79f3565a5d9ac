package service

import "Quill/internal/model"

// CanDeleteComment 管理员、评论作者或帖子作者可以删除评论
func CanDeleteComment(actor Actor, authors *model.CommentAuthors) bool {
	if !actor.IsAuthenticated() || authors == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.UserID == authors.AuthorID || actor.UserID == authors.PostAuthorID
}

// CanDeletePost 管理员或帖子作者可以删除帖子
func CanDeletePost(actor Actor, post *model.Post) bool {
	if !actor.IsAuthenticated() || post == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == post.UserID
}
