package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/util"
	"Quill/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const DefaultCommentMaxLength = 1000

// CommentViewCache 评论列表读缓存，未命中或失败都返回 false。
// 未命中时返回的 stamp 原样传给 SetComments，期间发生失效则回填不可见
type CommentViewCache interface {
	GetComments(ctx context.Context, scope string) (comments []*model.PostComment, stamp string, ok bool)
	SetComments(ctx context.Context, scope, stamp string, comments []*model.PostComment)
}

// CommentOptions MaxDepth 为负时不限制嵌套深度
type CommentOptions struct {
	MaxDepth  int
	MaxLength int
}

type CommentService interface {
	CreateComment(ctx context.Context, actor Actor, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, actor Actor, commentID uint64) error
	ListComments(ctx context.Context, actor Actor, postID uint64) (*dto.CommentListDTO, error)
	CountComments(ctx context.Context, postID uint64) (int64, error)
}

type commentServiceImpl struct {
	commentRepo     repository.CommentRepo
	postRepo        repository.PostRepo
	commentLikeRepo repository.AssociationRepo
	cache           CommentViewCache
	stale           Invalidator
	opts            CommentOptions
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	commentLikeRepo repository.AssociationRepo,
	cache CommentViewCache,
	stale Invalidator,
	opts CommentOptions,
) CommentService {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultCommentMaxLength
	}
	if stale == nil {
		stale = NopInvalidator{}
	}
	return &commentServiceImpl{
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		commentLikeRepo: commentLikeRepo,
		cache:           cache,
		stale:           stale,
		opts:            opts,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, actor Actor, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if req == nil || req.PostID == 0 {
		return nil, ErrParamInvalid
	}

	content := util.SanitizeText(req.Content)
	if content == "" {
		return nil, ErrContentEmpty
	}
	if util.RuneLen(content) > s.opts.MaxLength {
		return nil, ErrContentTooLong
	}

	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, storeErr("post.get", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	// 父评论不做存在性校验，读取时找不到父节点会被提升为根评论
	comment := &model.PostComment{
		PostID:   req.PostID,
		UserID:   actor.UserID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, storeErr("comment.create", err)
	}

	s.stale.NotifyStale(ctx, PostCommentsScope(comment.PostID))
	s.stale.NotifyStale(ctx, PostStateScope(comment.PostID))

	res := &dto.CommentDTO{}
	if err = copier.Copy(res, comment); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor Actor, commentID uint64) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}

	authors, err := s.commentRepo.GetCommentAuthors(ctx, commentID)
	if err != nil {
		return storeErr("comment.authors", err)
	}
	if authors == nil {
		return ErrPostCommentNotFound
	}

	if !CanDeleteComment(actor, authors) {
		return ErrForbidden
	}

	removed, err := s.commentRepo.DeleteComment(ctx, commentID)
	if err != nil {
		return storeErr("comment.delete", err)
	}
	if !removed {
		return ErrPostCommentNotFound
	}

	log.InfoContext(ctx, "comment deleted",
		"comment_id", commentID,
		"post_id", authors.PostID,
		"actor", actor.UserID,
		"moderated", actor.UserID != authors.AuthorID)

	s.stale.NotifyStale(ctx, PostCommentsScope(authors.PostID))
	s.stale.NotifyStale(ctx, PostStateScope(authors.PostID))
	return nil
}

func (s *commentServiceImpl) ListComments(ctx context.Context, actor Actor, postID uint64) (*dto.CommentListDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, storeErr("post.get", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.loadComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	var likeCounts map[uint64]int64
	var liked map[uint64]bool
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likeCounts, err = s.commentLikeRepo.CountBatch(gCtx, ids)
		return storeErr("comment_like.count", err)
	})
	g.Go(func() error {
		var err error
		liked, err = s.commentLikeRepo.FilterExisting(gCtx, actor.UserID, ids)
		return storeErr("comment_like.filter", err)
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	roots := CapCommentDepth(BuildCommentTree(comments), s.opts.MaxDepth)
	nodes, err := s.toNodeDTOs(roots, likeCounts, liked)
	if err != nil {
		return nil, err
	}

	return &dto.CommentListDTO{
		PostID:   postID,
		Total:    len(comments),
		MaxDepth: s.opts.MaxDepth,
		Comments: nodes,
	}, nil
}

func (s *commentServiceImpl) CountComments(ctx context.Context, postID uint64) (int64, error) {
	count, err := s.commentRepo.CountComments(ctx, postID)
	return count, storeErr("comment.count", err)
}

// loadComments 优先读视图缓存，未命中回源并回填
func (s *commentServiceImpl) loadComments(ctx context.Context, postID uint64) ([]*model.PostComment, error) {
	scope := PostCommentsScope(postID)
	var stamp string
	if s.cache != nil {
		cached, cachedStamp, ok := s.cache.GetComments(ctx, scope)
		if ok {
			return cached, nil
		}
		stamp = cachedStamp
	}

	comments, err := s.commentRepo.GetComments(ctx, postID)
	if err != nil {
		return nil, storeErr("comment.list", err)
	}
	if s.cache != nil {
		s.cache.SetComments(ctx, scope, stamp, comments)
	}
	return comments, nil
}

func (s *commentServiceImpl) toNodeDTOs(nodes []*CommentNode, likeCounts map[uint64]int64, liked map[uint64]bool) ([]*dto.CommentNodeDTO, error) {
	out := make([]*dto.CommentNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		item := &dto.CommentNodeDTO{
			Depth:     n.Depth,
			CanReply:  s.opts.MaxDepth < 0 || n.Depth < s.opts.MaxDepth,
			LikeCount: likeCounts[n.Comment.ID],
			IsLiked:   liked[n.Comment.ID],
		}
		if err := copier.Copy(&item.CommentDTO, n.Comment); err != nil {
			return nil, err
		}
		children, err := s.toNodeDTOs(n.Children, likeCounts, liked)
		if err != nil {
			return nil, err
		}
		item.Children = children
		out = append(out, item)
	}
	return out, nil
}
