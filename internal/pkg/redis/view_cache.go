package redis

import (
	"Quill/internal/model"
	"Quill/internal/pkg/consts"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	evictTimeout    = time.Second
	evictRetryDelay = 2 * time.Second
	// initialStamp 版本键不存在时使用
	initialStamp = "0"
)

// ViewCache 帖子评论列表的短期缓存。
// 数据键带版本戳，淘汰即更换版本，回源前读到旧版本的请求回填的是旧键，不会再被读到。
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewCache(rdb *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{rdb: rdb, ttl: ttl}
}

func versionKey(scope string) string {
	return consts.ViewVersionKey + scope
}

func viewKey(scope, stamp string) string {
	return consts.ViewCacheKey + scope + ":" + stamp
}

// GetComments 命中返回 true。未命中时返回当前版本戳供回填，读不到版本时戳为空，不回填
func (s *ViewCache) GetComments(ctx context.Context, scope string) ([]*model.PostComment, string, bool) {
	stamp, err := s.rdb.Get(ctx, versionKey(scope)).Result()
	if errors.Is(err, redis.Nil) {
		stamp = initialStamp
	} else if err != nil {
		log.WarnContext(ctx, "view cache version read failed", "scope", scope, "err", err)
		return nil, "", false
	}

	raw, err := s.rdb.Get(ctx, viewKey(scope, stamp)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WarnContext(ctx, "view cache read failed", "scope", scope, "err", err)
		}
		return nil, stamp, false
	}

	var comments []*model.PostComment
	if err = json.Unmarshal(raw, &comments); err != nil {
		log.WarnContext(ctx, "view cache decode failed", "scope", scope, "err", err)
		_ = s.rdb.Del(ctx, viewKey(scope, stamp)).Err()
		return nil, stamp, false
	}
	return comments, stamp, true
}

// SetComments 按读取时的版本戳回填，失败只记录日志
func (s *ViewCache) SetComments(ctx context.Context, scope, stamp string, comments []*model.PostComment) {
	if s.ttl <= 0 || stamp == "" {
		return
	}
	raw, err := json.Marshal(comments)
	if err != nil {
		log.WarnContext(ctx, "view cache encode failed", "scope", scope, "err", err)
		return
	}
	if err = s.rdb.Set(ctx, viewKey(scope, stamp), raw, s.ttl).Err(); err != nil {
		log.WarnContext(ctx, "view cache write failed", "scope", scope, "err", err)
	}
}

// Evict 更换版本戳，旧数据键随 TTL 过期。
// 版本键的存活时间是数据 TTL 的两倍，过期回落到初始戳时旧的初始戳数据早已过期
func (s *ViewCache) Evict(ctx context.Context, scope string) error {
	if s.ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, versionKey(scope), uuid.NewString(), 2*s.ttl).Err()
}

// NotifyStale 返回前同步淘汰，失败时延迟重试一次
func (s *ViewCache) NotifyStale(ctx context.Context, scope string) {
	base := context.WithoutCancel(ctx)
	err := s.evictWithTimeout(base, scope)
	if err == nil {
		return
	}
	log.WarnContext(ctx, "view cache evict failed, retry later", "scope", scope, "err", err)

	time.AfterFunc(evictRetryDelay, func() {
		if err := s.evictWithTimeout(base, scope); err != nil {
			log.ErrorContext(base, "view cache evict retry failed", "scope", scope, "err", err)
		}
	})
}

func (s *ViewCache) evictWithTimeout(ctx context.Context, scope string) error {
	evictCtx, cancel := context.WithTimeout(ctx, evictTimeout)
	defer cancel()
	return s.Evict(evictCtx, scope)
}
