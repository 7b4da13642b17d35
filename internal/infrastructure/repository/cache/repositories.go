package cache

import (
	"context"
	"strconv"

	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	basecache "github.com/strideleague/marathon-fantasy/internal/platform/cache"
)

// RuleSetRepository is a read-through cache over the rule store. Published
// versions are immutable, so a cached hit can never go stale; the TTL only
// bounds memory.
type RuleSetRepository struct {
	next  rules.Repository
	cache *basecache.Store
}

func NewRuleSetRepository(next rules.Repository, cache *basecache.Store) *RuleSetRepository {
	return &RuleSetRepository{next: next, cache: cache}
}

func (r *RuleSetRepository) GetByVersion(ctx context.Context, version int) (rules.RuleSet, bool, error) {
	key := ruleSetKey(version)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		rs, exists, err := r.next.GetByVersion(ctx, version)
		if err != nil {
			return nil, err
		}
		return cachedRuleSet{value: rs, exists: exists}, nil
	})
	if err != nil {
		return rules.RuleSet{}, false, err
	}

	cached, _ := v.(cachedRuleSet)
	return cached.value, cached.exists, nil
}

func (r *RuleSetRepository) Publish(ctx context.Context, rs rules.RuleSet) error {
	if err := r.next.Publish(ctx, rs); err != nil {
		return err
	}
	// A failed earlier lookup may have cached a miss for this version.
	r.cache.Delete(ctx, ruleSetKey(rs.Version))
	return nil
}

func ruleSetKey(version int) string {
	return "ruleset:v:" + strconv.Itoa(version)
}

type cachedRuleSet struct {
	value  rules.RuleSet
	exists bool
}
