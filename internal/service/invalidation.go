package service

import (
	"context"
	"strconv"
)

// Invalidator 视图失效通知，不返回错误。本地缓存在返回前完成淘汰，跨实例广播可异步
type Invalidator interface {
	NotifyStale(ctx context.Context, scope string)
}

// Invalidators 依次通知多个下游
type Invalidators []Invalidator

func (s Invalidators) NotifyStale(ctx context.Context, scope string) {
	for _, inv := range s {
		if inv != nil {
			inv.NotifyStale(ctx, scope)
		}
	}
}

// NopInvalidator 不做任何事
type NopInvalidator struct{}

func (NopInvalidator) NotifyStale(context.Context, string) {}

func PostCommentsScope(postID uint64) string {
	return "post:" + strconv.FormatUint(postID, 10) + ":comments"
}

func PostStateScope(postID uint64) string {
	return "post:" + strconv.FormatUint(postID, 10) + ":state"
}

func CommentScope(commentID uint64) string {
	return "comment:" + strconv.FormatUint(commentID, 10)
}
