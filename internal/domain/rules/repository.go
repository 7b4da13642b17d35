package rules

import (
	"context"
	"errors"
)

// ErrVersionExists reports an attempt to republish an already-published
// version. Rule sets are append-only: a published definition never changes.
var ErrVersionExists = errors.New("rule set version already published")

// Repository is the rule-store collaborator. The engine never invents or
// mutates a rule set; it always works against the explicit version the
// caller names.
type Repository interface {
	GetByVersion(ctx context.Context, version int) (RuleSet, bool, error)
	Publish(ctx context.Context, rs RuleSet) error
}
