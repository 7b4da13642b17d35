package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	qb "github.com/strideleague/marathon-fantasy/internal/platform/querybuilder"
)

type RuleSetRepository struct {
	db *sqlx.DB
}

func NewRuleSetRepository(db *sqlx.DB) *RuleSetRepository {
	return &RuleSetRepository{db: db}
}

func (r *RuleSetRepository) GetByVersion(ctx context.Context, version int) (rules.RuleSet, bool, error) {
	query, args, err := qb.Select("*").
		From("scoring_rule_sets").
		Where(
			qb.Eq("version", version),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return rules.RuleSet{}, false, fmt.Errorf("build get rule set query: %w", err)
	}

	var row ruleSetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rules.RuleSet{}, false, nil
		}
		return rules.RuleSet{}, false, fmt.Errorf("get rule set v%d: %w", version, err)
	}

	rs, err := rules.DecodeRuleSet(row.Definition)
	if err != nil {
		return rules.RuleSet{}, false, crerr.Wrapf(err, "decode stored rule set v%d", version)
	}
	return rs, true, nil
}

// Publish appends a new rule-set version. Published definitions are
// immutable; a version collision surfaces as rules.ErrVersionExists rather
// than an overwrite.
func (r *RuleSetRepository) Publish(ctx context.Context, rs rules.RuleSet) error {
	if err := rs.Validate(); err != nil {
		return err
	}

	definition, err := rules.EncodeRuleSet(rs)
	if err != nil {
		return fmt.Errorf("encode rule set v%d: %w", rs.Version, err)
	}

	insertModel := ruleSetInsertModel{
		Version:    rs.Version,
		Definition: definition,
	}
	query, args, err := qb.InsertModel("scoring_rule_sets", insertModel, "")
	if err != nil {
		return fmt.Errorf("build publish rule set query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("publish rule set v%d: %w", rs.Version, rules.ErrVersionExists)
		}
		return fmt.Errorf("publish rule set v%d: %w", rs.Version, err)
	}
	return nil
}
