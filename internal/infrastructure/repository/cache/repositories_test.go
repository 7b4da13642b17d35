package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	basecache "github.com/strideleague/marathon-fantasy/internal/platform/cache"
)

type countingRuleRepo struct {
	next  rules.Repository
	calls atomic.Int32
}

func (r *countingRuleRepo) GetByVersion(ctx context.Context, version int) (rules.RuleSet, bool, error) {
	r.calls.Add(1)
	return r.next.GetByVersion(ctx, version)
}

func (r *countingRuleRepo) Publish(ctx context.Context, rs rules.RuleSet) error {
	return r.next.Publish(ctx, rs)
}

type mapRuleRepo struct {
	items map[int]rules.RuleSet
}

func (r *mapRuleRepo) GetByVersion(_ context.Context, version int) (rules.RuleSet, bool, error) {
	rs, ok := r.items[version]
	return rs, ok, nil
}

func (r *mapRuleRepo) Publish(_ context.Context, rs rules.RuleSet) error {
	r.items[rs.Version] = rs
	return nil
}

func TestRuleSetRepository_GetByVersionCachesHits(t *testing.T) {
	t.Parallel()

	counting := &countingRuleRepo{next: &mapRuleRepo{items: map[int]rules.RuleSet{1: rules.DefaultRuleSet()}}}
	repo := NewRuleSetRepository(counting, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rs, found, err := repo.GetByVersion(ctx, 1)
		if err != nil {
			t.Fatalf("get by version: %v", err)
		}
		if !found {
			t.Fatalf("expected version 1 to exist")
		}
		if rs.Version != 1 {
			t.Fatalf("unexpected version: %d", rs.Version)
		}
	}

	if got := counting.calls.Load(); got != 1 {
		t.Fatalf("expected 1 backing load, got %d", got)
	}
}

func TestRuleSetRepository_PublishInvalidatesCachedMiss(t *testing.T) {
	t.Parallel()

	backing := &mapRuleRepo{items: map[int]rules.RuleSet{}}
	repo := NewRuleSetRepository(backing, basecache.NewStore(time.Minute))
	ctx := context.Background()

	if _, found, err := repo.GetByVersion(ctx, 2); err != nil || found {
		t.Fatalf("expected clean miss, found=%t err=%v", found, err)
	}

	rs := rules.DefaultRuleSet()
	rs.Version = 2
	if err := repo.Publish(ctx, rs); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got, found, err := repo.GetByVersion(ctx, 2)
	if err != nil {
		t.Fatalf("get by version after publish: %v", err)
	}
	if !found || got.Version != 2 {
		t.Fatalf("expected published version 2 to be visible, found=%t version=%d", found, got.Version)
	}
}
