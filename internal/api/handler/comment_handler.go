package handler

import (
	"Quill/internal/api/dto"
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/response"
	"Quill/internal/pkg/util"
	"Quill/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
	actionSvc  service.PostActionService
}

func NewCommentHandler(commentSvc service.CommentService, actionSvc service.PostActionService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
		actionSvc:  actionSvc,
	}
}

// ListComments 获取帖子评论树
func (s *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("post_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.commentSvc.ListComments(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// CreateComment 发表评论或回复
func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.commentSvc.CreateComment(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteComment 删除评论，评论作者、帖子作者与管理员可操作
func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.commentSvc.DeleteComment(c.Request.Context(), middleware.CurrentActor(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// LikeComment 点赞/取消点赞评论
func (s *CommentHandler) LikeComment(c *gin.Context) {
	commentID, ok := util.ParseID(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.actionSvc.ToggleCommentLike(c.Request.Context(), middleware.CurrentActor(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
