package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
)

type RuleSetRepository struct {
	mu    sync.RWMutex
	items map[int]rules.RuleSet
}

func NewRuleSetRepository(ruleSets []rules.RuleSet) *RuleSetRepository {
	items := make(map[int]rules.RuleSet, len(ruleSets))
	for _, rs := range ruleSets {
		items[rs.Version] = rs
	}
	return &RuleSetRepository{items: items}
}

func (r *RuleSetRepository) GetByVersion(_ context.Context, version int) (rules.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.items[version]
	if !ok {
		return rules.RuleSet{}, false, nil
	}
	return rs, true, nil
}

func (r *RuleSetRepository) Publish(_ context.Context, rs rules.RuleSet) error {
	if err := rs.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[rs.Version]; ok {
		return fmt.Errorf("publish rule set v%d: %w", rs.Version, rules.ErrVersionExists)
	}
	r.items[rs.Version] = rs
	return nil
}
