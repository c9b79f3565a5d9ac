package service

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestLikeToggle_Sequence(t *testing.T) {
	repo := newFakeAssocRepo()
	toggle := NewLikeToggle(repo, "comment_like")
	actor := Actor{UserID: 7, Role: RoleMember}
	ctx := context.Background()

	liked, err := toggle.Toggle(ctx, actor, 1)
	if err != nil || !liked {
		t.Fatalf("first toggle = %v, %v; want true, nil", liked, err)
	}
	liked, err = toggle.Toggle(ctx, actor, 1)
	if err != nil || liked {
		t.Fatalf("second toggle = %v, %v; want false, nil", liked, err)
	}
	if repo.size() != 0 {
		t.Fatalf("expected no rows after two toggles, got %d", repo.size())
	}
}

func TestLikeToggle_Unauthenticated(t *testing.T) {
	repo := newFakeAssocRepo()
	_, err := NewLikeToggle(repo, "post_like").Toggle(context.Background(), Anonymous, 1)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if KindOf(err) != KindUnauthenticated {
		t.Fatalf("expected unauthenticated kind, got %v", KindOf(err))
	}
}

func TestLikeToggle_ConcurrentPristine(t *testing.T) {
	repo := newFakeAssocRepo()
	b := newBarrier(2)
	repo.onExists = b.wait

	toggle := NewLikeToggle(repo, "post_like")
	actor := Actor{UserID: 7, Role: RoleMember}

	var wg sync.WaitGroup
	results := make([]bool, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = toggle.Toggle(context.Background(), actor, 1)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}
	if repo.size() != 1 {
		t.Fatalf("expected exactly one persisted like, got %d", repo.size())
	}
	for i, liked := range results {
		if !liked {
			t.Fatalf("toggle %d reported liked=false, but the like is persisted", i)
		}
	}
}

func TestLikeToggle_DeleteRaceReportsObservedState(t *testing.T) {
	repo := newFakeAssocRepo()
	repo.put(1, 7)

	toggle := NewLikeToggle(&racingDeleteRepo{fakeAssocRepo: repo}, "post_like")

	liked, err := toggle.Toggle(context.Background(), Actor{UserID: 7}, 1)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if liked {
		t.Fatalf("expected liked=false after concurrent removal")
	}
}

// racingDeleteRepo 在 Delete 前模拟并发请求已删除该行
type racingDeleteRepo struct {
	*fakeAssocRepo
}

func (r *racingDeleteRepo) Delete(ctx context.Context, subjectID, userID uint64) (bool, error) {
	r.remove(subjectID, userID)
	return r.fakeAssocRepo.Delete(ctx, subjectID, userID)
}

func TestLikeToggle_StoreFailure(t *testing.T) {
	repo := newFakeAssocRepo()
	repo.existsErr = errStoreDown

	_, err := NewLikeToggle(repo, "post_like").Toggle(context.Background(), Actor{UserID: 7}, 1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("store error should keep the original cause, got %v", err)
	}
	var se *StoreError
	if !errors.As(err, &se) || se.Op != "post_like.exists" {
		t.Fatalf("expected StoreError with op post_like.exists, got %#v", err)
	}
}

func TestLikeToggle_CreateFailure(t *testing.T) {
	repo := newFakeAssocRepo()
	repo.createErr = errStoreDown

	liked, err := NewLikeToggle(repo, "post_like").Toggle(context.Background(), Actor{UserID: 7}, 1)
	if liked || KindOf(err) != KindStoreUnavailable {
		t.Fatalf("expected store unavailable, got liked=%v err=%v", liked, err)
	}
}
