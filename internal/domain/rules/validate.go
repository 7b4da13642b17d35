package rules

import (
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidRuleSet = errors.New("invalid scoring rule set")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeRuleSet decodes a stored JSON rule-set definition into a typed,
// validated RuleSet. Decoding happens once at load time; scoring calls work
// on the typed value only.
func DecodeRuleSet(raw []byte) (RuleSet, error) {
	var rs RuleSet
	if err := sonic.Unmarshal(raw, &rs); err != nil {
		return RuleSet{}, crerr.Wrap(err, "decode scoring rule set")
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}

// EncodeRuleSet serializes a rule set to its stored JSON form.
func EncodeRuleSet(rs RuleSet) ([]byte, error) {
	raw, err := sonic.Marshal(rs)
	if err != nil {
		return nil, crerr.Wrap(err, "encode scoring rule set")
	}
	return raw, nil
}

// Validate checks a rule set against the configuration invariants. A rule
// set that fails here must never reach the scoring engine: misconfiguration
// is a caller error surfaced at load time, not something to score around.
func (rs RuleSet) Validate() error {
	if err := validate.Struct(rs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}

	if rs.MaxScoredPlace > len(rs.PlacementPoints) {
		return fmt.Errorf("%w: max_scored_place %d exceeds placement table length %d",
			ErrInvalidRuleSet, rs.MaxScoredPlace, len(rs.PlacementPoints))
	}

	for i := 1; i < len(rs.GapWindows); i++ {
		if rs.GapWindows[i].MaxGapSeconds <= rs.GapWindows[i-1].MaxGapSeconds {
			return fmt.Errorf("%w: time_gap_windows must be strictly ascending by max_gap_seconds (index %d)",
				ErrInvalidRuleSet, i)
		}
	}

	if len(rs.RecordPrecedence) == 0 {
		return fmt.Errorf("%w: record_bonus_precedence is required", ErrInvalidRuleSet)
	}
	seen := make(map[RecordType]struct{}, len(rs.RecordPrecedence))
	for _, rt := range rs.RecordPrecedence {
		if _, ok := KnownRecordTypes[rt]; !ok {
			return fmt.Errorf("%w: unknown record type %q in precedence", ErrInvalidRuleSet, rt)
		}
		if _, dup := seen[rt]; dup {
			return fmt.Errorf("%w: duplicate record type %q in precedence", ErrInvalidRuleSet, rt)
		}
		seen[rt] = struct{}{}
	}
	for rt := range rs.Records {
		if _, ok := KnownRecordTypes[rt]; !ok {
			return fmt.Errorf("%w: unknown record type %q in record_bonuses", ErrInvalidRuleSet, rt)
		}
		if _, listed := seen[rt]; !listed {
			return fmt.Errorf("%w: record type %q configured but missing from precedence", ErrInvalidRuleSet, rt)
		}
	}

	return nil
}
