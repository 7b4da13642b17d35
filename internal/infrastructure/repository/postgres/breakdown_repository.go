package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"

	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/scoring"
	qb "github.com/strideleague/marathon-fantasy/internal/platform/querybuilder"
)

type BreakdownRepository struct {
	db *sqlx.DB
}

func NewBreakdownRepository(db *sqlx.DB) *BreakdownRepository {
	return &BreakdownRepository{db: db}
}

// UpsertMany writes one batch of breakdowns inside a single transaction.
// The conflict target is the (race_id, competitor_id, rule_set_version)
// key, so re-running a recalculation replaces rows instead of duplicating
// them and never touches breakdowns of other versions.
func (r *BreakdownRepository) UpsertMany(ctx context.Context, breakdowns []scoring.Breakdown) error {
	if len(breakdowns) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert breakdowns: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, breakdown := range breakdowns {
		insertModel, err := breakdownToInsertModel(breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown %s/%s: %w", breakdown.RaceID, breakdown.CompetitorID, err)
		}
		query, args, err := qb.InsertModel("score_breakdowns", insertModel, `ON CONFLICT (race_id, competitor_id, rule_set_version) WHERE deleted_at IS NULL
DO UPDATE SET
    classification = EXCLUDED.classification,
    placement = EXCLUDED.placement,
    placement_points = EXCLUDED.placement_points,
    gap_seconds = EXCLUDED.gap_seconds,
    gap_points = EXCLUDED.gap_points,
    performance_bonuses = EXCLUDED.performance_bonuses,
    record_bonuses = EXCLUDED.record_bonuses,
    total_points = EXCLUDED.total_points,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert breakdown query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert breakdown %s/%s: %w", breakdown.RaceID, breakdown.CompetitorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert breakdowns tx: %w", err)
	}
	return nil
}

func (r *BreakdownRepository) ListByRaceVersion(ctx context.Context, raceID string, version int) ([]scoring.Breakdown, error) {
	query, args, err := qb.Select("*").
		From("score_breakdowns").
		Where(
			qb.Eq("race_id", raceID),
			qb.Eq("rule_set_version", version),
			qb.IsNull("deleted_at"),
		).
		OrderBy("competitor_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list breakdowns query: %w", err)
	}

	var rows []breakdownTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list breakdowns: %w", err)
	}

	out := make([]scoring.Breakdown, 0, len(rows))
	for _, row := range rows {
		breakdown, err := breakdownToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("decode breakdown %s/%s: %w", row.RaceID, row.CompetitorID, err)
		}
		out = append(out, breakdown)
	}
	return out, nil
}

func breakdownToInsertModel(breakdown scoring.Breakdown) (breakdownInsertModel, error) {
	performanceJSON, err := marshalAwards(breakdown.Performance)
	if err != nil {
		return breakdownInsertModel{}, fmt.Errorf("marshal performance bonuses: %w", err)
	}
	recordsJSON, err := marshalAwards(breakdown.Records)
	if err != nil {
		return breakdownInsertModel{}, fmt.Errorf("marshal record bonuses: %w", err)
	}

	model := breakdownInsertModel{
		RaceID:          breakdown.RaceID,
		CompetitorID:    breakdown.CompetitorID,
		RuleSetVersion:  breakdown.RuleSetVersion,
		Classification:  string(breakdown.Classification),
		PlacementPoints: breakdown.PlacementPoints,
		GapPoints:       breakdown.GapPoints,
		Performance:     performanceJSON,
		Records:         recordsJSON,
		TotalPoints:     breakdown.TotalPoints,
	}
	if breakdown.Placement != nil {
		placement := int64(*breakdown.Placement)
		model.Placement = &placement
	}
	if breakdown.GapSeconds != nil {
		gap := *breakdown.GapSeconds
		model.GapSeconds = &gap
	}
	return model, nil
}

func breakdownToDomain(row breakdownTableModel) (scoring.Breakdown, error) {
	breakdown := scoring.Breakdown{
		RaceID:          row.RaceID,
		CompetitorID:    row.CompetitorID,
		RuleSetVersion:  row.RuleSetVersion,
		Classification:  result.Status(row.Classification),
		PlacementPoints: row.PlacementPoints,
		GapPoints:       row.GapPoints,
		TotalPoints:     row.TotalPoints,
	}
	if row.Placement.Valid {
		placement := int(row.Placement.Int64)
		breakdown.Placement = &placement
	}
	if row.GapSeconds.Valid {
		gap := row.GapSeconds.Int64
		breakdown.GapSeconds = &gap
	}
	if len(row.Performance) > 0 {
		if err := jsoniter.Unmarshal(row.Performance, &breakdown.Performance); err != nil {
			return scoring.Breakdown{}, fmt.Errorf("unmarshal performance bonuses: %w", err)
		}
	}
	if len(row.Records) > 0 {
		if err := jsoniter.Unmarshal(row.Records, &breakdown.Records); err != nil {
			return scoring.Breakdown{}, fmt.Errorf("unmarshal record bonuses: %w", err)
		}
	}
	return breakdown, nil
}

// marshalAwards serializes an award slice through a pooled buffer. Recalc
// batches write many small JSON payloads back to back, so the buffers are
// worth reusing.
func marshalAwards(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := jsoniter.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}
