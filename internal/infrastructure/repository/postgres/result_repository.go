package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	qb "github.com/strideleague/marathon-fantasy/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListByRace(ctx context.Context, raceID string) ([]result.RaceResult, error) {
	query, args, err := qb.Select("*").
		From("race_results").
		Where(
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("competitor_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list race results: %w", err)
	}

	out := make([]result.RaceResult, 0, len(rows))
	for _, row := range rows {
		item, err := raceResultToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("decode race result %s/%s: %w", row.RaceID, row.CompetitorID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ResultRepository) UpsertResult(ctx context.Context, item result.RaceResult) error {
	splitsJSON, err := marshalSplits(item.Splits)
	if err != nil {
		return fmt.Errorf("marshal splits for %s/%s: %w", item.RaceID, item.CompetitorID, err)
	}

	insertModel := raceResultInsertModel{
		RaceID:       item.RaceID,
		CompetitorID: item.CompetitorID,
		FinishMs:     finishToNullable(item.Finish),
		Splits:       splitsJSON,
		WorldRecord:  item.Records.World,
		CourseRecord: item.Records.Course,
		RecordStatus: string(recordStatusOrNone(item.Records.Status)),
	}
	query, args, err := qb.InsertModel("race_results", insertModel, `ON CONFLICT (race_id, competitor_id) WHERE deleted_at IS NULL
DO UPDATE SET
    finish_ms = EXCLUDED.finish_ms,
    splits = EXCLUDED.splits,
    world_record = EXCLUDED.world_record,
    course_record = EXCLUDED.course_record,
    record_status = EXCLUDED.record_status,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert race result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert race result: %w", err)
	}
	return nil
}

func raceResultToDomain(row raceResultTableModel) (result.RaceResult, error) {
	splits, err := unmarshalSplits(row.Splits)
	if err != nil {
		return result.RaceResult{}, err
	}

	item := result.RaceResult{
		RaceID:       row.RaceID,
		CompetitorID: row.CompetitorID,
		Splits:       splits,
		Records: result.RecordFlags{
			World:  row.WorldRecord,
			Course: row.CourseRecord,
			Status: recordStatusOrNone(result.RecordStatus(row.RecordStatus)),
		},
	}
	if row.FinishMs.Valid {
		finish, ok := racetime.FromMillis(row.FinishMs.Int64)
		if !ok {
			return result.RaceResult{}, fmt.Errorf("negative finish_ms %d", row.FinishMs.Int64)
		}
		item.Finish = &finish
	}
	return item, nil
}

func marshalSplits(splits result.Splits) ([]byte, error) {
	if len(splits) == 0 {
		return []byte("{}"), nil
	}
	raw := make(map[string]int64, len(splits))
	for cp, value := range splits {
		raw[string(cp)] = value.Millis()
	}
	return jsoniter.Marshal(raw)
}

func unmarshalSplits(data []byte) (result.Splits, error) {
	if len(data) == 0 {
		return nil, nil
	}
	raw := make(map[string]int64)
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal splits: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	splits := make(result.Splits, len(raw))
	for name, ms := range raw {
		value, ok := racetime.FromMillis(ms)
		if !ok {
			return nil, fmt.Errorf("negative split for checkpoint %s: %d", name, ms)
		}
		splits[racetime.Checkpoint(name)] = value
	}
	return splits, nil
}

func finishToNullable(finish *racetime.TimeValue) *int64 {
	if finish == nil {
		return nil
	}
	ms := finish.Millis()
	return &ms
}

func recordStatusOrNone(status result.RecordStatus) result.RecordStatus {
	if status == "" {
		return result.RecordStatusNone
	}
	return status
}
