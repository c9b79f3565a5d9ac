package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/repository"
	"context"
	log "log/slog"

	"golang.org/x/sync/errgroup"
)

type PostActionService interface {
	TogglePostLike(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error)
	ToggleBookmark(ctx context.Context, actor Actor, postID uint64) (*dto.BookmarkStateDTO, error)
	ToggleCommentLike(ctx context.Context, actor Actor, commentID uint64) (*dto.LikeStateDTO, error)
	GetPostActionState(ctx context.Context, actor Actor, postID uint64) (*dto.PostActionStateDTO, error)
	DeletePost(ctx context.Context, actor Actor, postID uint64) error
}

type postActionServiceImpl struct {
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
	likeRepo     repository.AssociationRepo
	bookmarkRepo repository.AssociationRepo

	postLikes    *LikeToggle
	bookmarks    *LikeToggle
	commentLikes *LikeToggle

	stale Invalidator
}

func NewPostActionService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	likeRepo repository.AssociationRepo,
	bookmarkRepo repository.AssociationRepo,
	commentLikeRepo repository.AssociationRepo,
	stale Invalidator,
) PostActionService {
	if stale == nil {
		stale = NopInvalidator{}
	}
	return &postActionServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		bookmarkRepo: bookmarkRepo,
		postLikes:    NewLikeToggle(likeRepo, "post_like"),
		bookmarks:    NewLikeToggle(bookmarkRepo, "bookmark"),
		commentLikes: NewLikeToggle(commentLikeRepo, "comment_like"),
		stale:        stale,
	}
}

func (s *postActionServiceImpl) TogglePostLike(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error) {
	liked, err := s.togglePost(ctx, actor, postID, s.postLikes)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStateDTO{Liked: liked}, nil
}

func (s *postActionServiceImpl) ToggleBookmark(ctx context.Context, actor Actor, postID uint64) (*dto.BookmarkStateDTO, error) {
	bookmarked, err := s.togglePost(ctx, actor, postID, s.bookmarks)
	if err != nil {
		return nil, err
	}
	return &dto.BookmarkStateDTO{Bookmarked: bookmarked}, nil
}

func (s *postActionServiceImpl) ToggleCommentLike(ctx context.Context, actor Actor, commentID uint64) (*dto.LikeStateDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, storeErr("comment.get", err)
	}
	if comment == nil {
		return nil, ErrPostCommentNotFound
	}

	liked, err := s.commentLikes.Toggle(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}
	s.stale.NotifyStale(ctx, CommentScope(commentID))
	return &dto.LikeStateDTO{Liked: liked}, nil
}

func (s *postActionServiceImpl) GetPostActionState(ctx context.Context, actor Actor, postID uint64) (*dto.PostActionStateDTO, error) {
	if err := s.getPostCheck(ctx, postID); err != nil {
		return nil, err
	}

	state := &dto.PostActionStateDTO{PostID: postID}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		state.LikeCount, err = s.likeRepo.Count(gCtx, postID)
		return storeErr("post_like.count", err)
	})
	g.Go(func() error {
		var err error
		state.BookmarkCount, err = s.bookmarkRepo.Count(gCtx, postID)
		return storeErr("bookmark.count", err)
	})
	g.Go(func() error {
		var err error
		state.CommentCount, err = s.commentRepo.CountComments(gCtx, postID)
		return storeErr("comment.count", err)
	})
	if actor.IsAuthenticated() {
		g.Go(func() error {
			var err error
			state.IsLiked, err = s.likeRepo.Exists(gCtx, postID, actor.UserID)
			return storeErr("post_like.exists", err)
		})
		g.Go(func() error {
			var err error
			state.IsBookmarked, err = s.bookmarkRepo.Exists(gCtx, postID, actor.UserID)
			return storeErr("bookmark.exists", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *postActionServiceImpl) DeletePost(ctx context.Context, actor Actor, postID uint64) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return storeErr("post.get", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !CanDeletePost(actor, post) {
		return ErrForbidden
	}

	removed, err := s.postRepo.DeletePost(ctx, postID)
	if err != nil {
		return storeErr("post.delete", err)
	}
	if !removed {
		return ErrPostNotFound
	}

	log.InfoContext(ctx, "post deleted", "post_id", postID, "actor", actor.UserID, "moderated", actor.UserID != post.UserID)
	s.stale.NotifyStale(ctx, PostCommentsScope(postID))
	s.stale.NotifyStale(ctx, PostStateScope(postID))
	return nil
}

func (s *postActionServiceImpl) togglePost(ctx context.Context, actor Actor, postID uint64, toggle *LikeToggle) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, ErrUnauthenticated
	}
	if err := s.getPostCheck(ctx, postID); err != nil {
		return false, err
	}

	state, err := toggle.Toggle(ctx, actor, postID)
	if err != nil {
		return false, err
	}
	s.stale.NotifyStale(ctx, PostStateScope(postID))
	return state, nil
}

// getPostCheck 帖子存在且未删除
func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return storeErr("post.get", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}
