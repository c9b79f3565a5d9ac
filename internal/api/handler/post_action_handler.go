package handler

import (
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/response"
	"Quill/internal/pkg/util"
	"Quill/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

// LikePost 点赞/取消点赞帖子
func (s *PostActionHandler) LikePost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("post_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.actionSvc.TogglePostLike(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// BookmarkPost 收藏/取消收藏帖子
func (s *PostActionHandler) BookmarkPost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("post_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.actionSvc.ToggleBookmark(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetPostActionState 获取帖子的交互计数与当前用户状态
func (s *PostActionHandler) GetPostActionState(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("post_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.actionSvc.GetPostActionState(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeletePost 删除帖子，作者与管理员可操作
func (s *PostActionHandler) DeletePost(c *gin.Context) {
	postID, ok := util.ParseID(c.Param("post_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.actionSvc.DeletePost(c.Request.Context(), middleware.CurrentActor(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
