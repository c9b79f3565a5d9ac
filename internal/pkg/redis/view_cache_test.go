package redis

import (
	"Quill/internal/model"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const testScope = "post:1:comments"

func newTestViewCache(t *testing.T, ttl time.Duration) (*ViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewViewCache(rdb, ttl), mr
}

func commentsOf(ids ...uint64) []*model.PostComment {
	out := make([]*model.PostComment, 0, len(ids))
	for _, id := range ids {
		out = append(out, &model.PostComment{ID: id, PostID: 1, UserID: 2, Content: "c"})
	}
	return out
}

func TestViewCache_FillThenHit(t *testing.T) {
	cache, _ := newTestViewCache(t, 5*time.Minute)
	ctx := context.Background()

	_, stamp, ok := cache.GetComments(ctx, testScope)
	if ok || stamp != initialStamp {
		t.Fatalf("expected miss with initial stamp, got ok=%v stamp=%q", ok, stamp)
	}
	cache.SetComments(ctx, testScope, stamp, commentsOf(1, 2))

	got, _, ok := cache.GetComments(ctx, testScope)
	if !ok || len(got) != 2 || got[1].ID != 2 {
		t.Fatalf("expected cached list, got ok=%v %+v", ok, got)
	}
}

func TestViewCache_NotifyStaleTakesEffectBeforeReturn(t *testing.T) {
	cache, _ := newTestViewCache(t, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		_, stamp, _ := cache.GetComments(ctx, testScope)
		cache.SetComments(ctx, testScope, stamp, commentsOf(1, 2))
		cache.NotifyStale(ctx, testScope)
		if got, _, ok := cache.GetComments(ctx, testScope); ok {
			t.Fatalf("round %d: stale list served after notify: %+v", i, got)
		}
	}
}

func TestViewCache_InFlightRefillIsInvisible(t *testing.T) {
	cache, mr := newTestViewCache(t, 5*time.Minute)
	ctx := context.Background()

	// 读请求在删除前拿到版本戳并读取了旧数据
	_, oldStamp, _ := cache.GetComments(ctx, testScope)
	cache.NotifyStale(ctx, testScope)
	cache.SetComments(ctx, testScope, oldStamp, commentsOf(1, 2))

	if got, _, ok := cache.GetComments(ctx, testScope); ok {
		t.Fatalf("refill from before the eviction must not be served: %+v", got)
	}

	_, stamp, _ := cache.GetComments(ctx, testScope)
	if stamp == oldStamp || stamp == "" {
		t.Fatalf("expected a fresh stamp, got %q", stamp)
	}
	cache.SetComments(ctx, testScope, stamp, commentsOf(2))
	got, _, ok := cache.GetComments(ctx, testScope)
	if !ok || len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected fresh list, got ok=%v %+v", ok, got)
	}

	if ttl := mr.TTL(versionKey(testScope)); ttl != 10*time.Minute {
		t.Fatalf("version key should outlive data keys, got ttl=%v", ttl)
	}
	if ttl := mr.TTL(viewKey(testScope, stamp)); ttl != 5*time.Minute {
		t.Fatalf("unexpected data ttl %v", ttl)
	}
}

func TestViewCache_CorruptEntryDropped(t *testing.T) {
	cache, mr := newTestViewCache(t, 5*time.Minute)
	key := viewKey(testScope, initialStamp)
	if err := mr.Set(key, "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, _, ok := cache.GetComments(context.Background(), testScope); ok {
		t.Fatalf("corrupt entry should read as a miss")
	}
	if mr.Exists(key) {
		t.Fatalf("corrupt entry should be deleted")
	}
}

func TestViewCache_DisabledTTL(t *testing.T) {
	cache, mr := newTestViewCache(t, 0)
	ctx := context.Background()

	_, stamp, _ := cache.GetComments(ctx, testScope)
	cache.SetComments(ctx, testScope, stamp, commentsOf(1))
	cache.NotifyStale(ctx, testScope)

	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("disabled cache should not write keys, got %v", keys)
	}
}

func TestViewCache_UnreachableSkipsRefill(t *testing.T) {
	cache, mr := newTestViewCache(t, 5*time.Minute)
	mr.Close()

	_, stamp, ok := cache.GetComments(context.Background(), testScope)
	if ok || stamp != "" {
		t.Fatalf("expected miss without stamp, got ok=%v stamp=%q", ok, stamp)
	}
	// 空戳不回填，也不应 panic
	cache.SetComments(context.Background(), testScope, stamp, commentsOf(1))
}
