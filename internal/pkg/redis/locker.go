package redis

import (
	"context"
	"time"
)

// ActionLocker 基于 SETNX 的一次性互斥，用于限制重复操作
type ActionLocker struct{}

func NewActionLocker() *ActionLocker {
	return &ActionLocker{}
}

// TryAcquire 不重试，已被占用时返回 false
func (s *ActionLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, time.Now().Unix(), ttl, 0)
}

// Release 放弃锁，用于后续步骤失败时回滚
func (s *ActionLocker) Release(ctx context.Context, key string) error {
	return DeleteKey(ctx, key)
}
