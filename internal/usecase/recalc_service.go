package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/strideleague/marathon-fantasy/internal/domain/result"
	"github.com/strideleague/marathon-fantasy/internal/domain/rules"
	"github.com/strideleague/marathon-fantasy/internal/domain/scoring"
	idgen "github.com/strideleague/marathon-fantasy/internal/platform/id"
	"github.com/strideleague/marathon-fantasy/internal/platform/logging"
)

const (
	defaultRecalcBatchSize  = 25
	defaultRecalcMaxWorkers = 4
	maxRecalcWorkers        = 32

	recalcStatusRecalculated = "recalculated"
	recalcStatusSkipped      = "skipped"
	recalcStatusFailed       = "failed"
)

// RecalcInput names the races to re-score and the rule-set version to apply.
// The version is always explicit; there is deliberately no "latest" mode,
// since an implicit current version would make historical runs
// irreproducible.
type RecalcInput struct {
	RaceIDs        []string
	RuleSetVersion int
	// BatchSize caps how many races are in flight per wave, bounding
	// memory and downstream write load. Zero picks the default.
	BatchSize int
	// MaxWorkers caps concurrent race computations. Zero picks the default.
	MaxWorkers int
}

// RaceRecalcResult reports the outcome for one race.
type RaceRecalcResult struct {
	RaceID      string `json:"race_id"`
	Status      string `json:"status"`
	Competitors int    `json:"competitors"`
	DurationMs  int64  `json:"duration_ms"`
	Message     string `json:"message,omitempty"`
}

// RecalcReport summarizes one recalculation run. Races that were never
// started (cancellation) are absent from Races; comparing its length with
// RaceCount shows how far the run got.
type RecalcReport struct {
	RunID          string             `json:"run_id,omitempty"`
	RuleSetVersion int                `json:"rule_set_version"`
	RaceCount      int                `json:"race_count"`
	SucceededCount int                `json:"succeeded_count"`
	SkippedCount   int                `json:"skipped_count"`
	FailedCount    int                `json:"failed_count"`
	WorkerCount    int                `json:"worker_count"`
	BatchSize      int                `json:"batch_size"`
	Races          []RaceRecalcResult `json:"races"`
}

// RecalcService re-applies a published rule-set version across historical
// races. Scoring itself is pure; this service owns the fetch/score/persist
// loop and its bounded concurrency.
type RecalcService struct {
	resultRepo    result.Repository
	rulesRepo     rules.Repository
	breakdownRepo scoring.Repository
	idGen         idgen.Generator
	logger        *logging.Logger
}

func NewRecalcService(
	resultRepo result.Repository,
	rulesRepo rules.Repository,
	breakdownRepo scoring.Repository,
	logger *logging.Logger,
) *RecalcService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecalcService{
		resultRepo:    resultRepo,
		rulesRepo:     rulesRepo,
		breakdownRepo: breakdownRepo,
		idGen:         idgen.NewRandomGenerator(),
		logger:        logger,
	}
}

// Recalculate scores every named race under the named rule-set version and
// upserts the resulting breakdowns. Failures are isolated per race and
// reported, never fatal to the rest of the run; re-running the same input
// is idempotent because scoring is pure and persistence upserts on
// (race, competitor, version). After ctx is cancelled no new race starts;
// in-flight races complete and appear in the report, and the context error
// is returned alongside the partial report.
func (s *RecalcService) Recalculate(ctx context.Context, input RecalcInput) (RecalcReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Recalculate")
	defer span.End()

	if s.resultRepo == nil || s.rulesRepo == nil || s.breakdownRepo == nil {
		return RecalcReport{}, fmt.Errorf("%w: recalculation service is not fully configured", ErrDependencyUnavailable)
	}
	if input.RuleSetVersion <= 0 {
		return RecalcReport{}, fmt.Errorf("%w: rule set version must be greater than zero", ErrInvalidInput)
	}

	ruleSet, found, err := s.rulesRepo.GetByVersion(ctx, input.RuleSetVersion)
	if err != nil {
		return RecalcReport{}, fmt.Errorf("get rule set version %d: %w", input.RuleSetVersion, err)
	}
	if !found {
		return RecalcReport{}, fmt.Errorf("%w: rule set version %d", ErrNotFound, input.RuleSetVersion)
	}
	if err := ruleSet.Validate(); err != nil {
		return RecalcReport{}, fmt.Errorf("rule set version %d failed validation: %w", input.RuleSetVersion, err)
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return RecalcReport{}, fmt.Errorf("generate run id: %w", err)
	}

	raceIDs := dedupeRaceIDs(input.RaceIDs)
	batchSize := normalizeBatchSize(input.BatchSize)
	workerCount := normalizeWorkerCount(input.MaxWorkers, len(raceIDs))

	report := RecalcReport{
		RunID:          runID,
		RuleSetVersion: ruleSet.Version,
		RaceCount:      len(raceIDs),
		WorkerCount:    workerCount,
		BatchSize:      batchSize,
		Races:          make([]RaceRecalcResult, 0, len(raceIDs)),
	}
	if len(raceIDs) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan RaceRecalcResult, len(raceIDs))

	var succeeded atomic.Int32
	var skipped atomic.Int32
	var failed atomic.Int32

	cancelled := false
	for start := 0; start < len(raceIDs) && !cancelled; start += batchSize {
		end := start + batchSize
		if end > len(raceIDs) {
			end = len(raceIDs)
		}

		var workers sync.WaitGroup
		for _, raceID := range raceIDs[start:end] {
			if ctx.Err() != nil {
				cancelled = true
				break
			}

			raceID := raceID
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				began := time.Now()
				var row RaceRecalcResult
				recovered := panics.Try(func() {
					row = s.recalculateRace(ctx, raceID, ruleSet)
				})
				if recovered != nil {
					row = RaceRecalcResult{
						RaceID:  raceID,
						Status:  recalcStatusFailed,
						Message: fmt.Sprintf("panic: %v", recovered.Value),
					}
				}
				row.DurationMs = time.Since(began).Milliseconds()

				switch row.Status {
				case recalcStatusRecalculated:
					succeeded.Add(1)
				case recalcStatusSkipped:
					skipped.Add(1)
				default:
					failed.Add(1)
				}
				rows <- row
			}); err != nil {
				workers.Done()
				workers.Wait()
				close(rows)
				return RecalcReport{}, fmt.Errorf("submit race to worker pool: %w", err)
			}
		}
		workers.Wait()
	}
	close(rows)

	for row := range rows {
		report.Races = append(report.Races, row)
	}
	sort.SliceStable(report.Races, func(i, j int) bool {
		return report.Races[i].RaceID < report.Races[j].RaceID
	})

	report.SucceededCount = int(succeeded.Load())
	report.SkippedCount = int(skipped.Load())
	report.FailedCount = int(failed.Load())

	s.logger.InfoContext(ctx, "recalculation finished",
		"run_id", runID,
		"rule_set_version", ruleSet.Version,
		"races", report.RaceCount,
		"succeeded", report.SucceededCount,
		"skipped", report.SkippedCount,
		"failed", report.FailedCount,
		"cancelled", cancelled,
	)

	if cancelled {
		return report, ctx.Err()
	}
	return report, nil
}

// PreviewRace scores one race under one version without persisting
// anything, answering "what would these competitors have scored under rule
// version N".
func (s *RecalcService) PreviewRace(ctx context.Context, raceID string, version int) ([]scoring.Breakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.PreviewRace")
	defer span.End()

	if raceID == "" {
		return nil, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	if version <= 0 {
		return nil, fmt.Errorf("%w: rule set version must be greater than zero", ErrInvalidInput)
	}

	ruleSet, found, err := s.rulesRepo.GetByVersion(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("get rule set version %d: %w", version, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: rule set version %d", ErrNotFound, version)
	}

	results, err := s.resultRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list results for race %s: %w", raceID, err)
	}

	return scoring.Score(results, ruleSet)
}

func (s *RecalcService) recalculateRace(ctx context.Context, raceID string, ruleSet rules.RuleSet) RaceRecalcResult {
	row := RaceRecalcResult{RaceID: raceID}

	results, err := s.resultRepo.ListByRace(ctx, raceID)
	if err != nil {
		row.Status = recalcStatusFailed
		row.Message = fmt.Sprintf("list results: %v", err)
		return row
	}
	if len(results) == 0 {
		row.Status = recalcStatusSkipped
		row.Message = "no results recorded for race"
		return row
	}

	breakdowns, err := scoring.Score(results, ruleSet)
	if err != nil {
		row.Status = recalcStatusFailed
		row.Message = fmt.Sprintf("score race: %v", err)
		return row
	}

	if err := s.breakdownRepo.UpsertMany(ctx, breakdowns); err != nil {
		row.Status = recalcStatusFailed
		row.Message = fmt.Sprintf("persist breakdowns: %v", err)
		return row
	}

	row.Status = recalcStatusRecalculated
	row.Competitors = len(breakdowns)
	return row
}

func dedupeRaceIDs(raceIDs []string) []string {
	out := make([]string, 0, len(raceIDs))
	seen := make(map[string]struct{}, len(raceIDs))
	for _, raceID := range raceIDs {
		if raceID == "" {
			continue
		}
		if _, dup := seen[raceID]; dup {
			continue
		}
		seen[raceID] = struct{}{}
		out = append(out, raceID)
	}
	return out
}

func normalizeBatchSize(batchSize int) int {
	if batchSize <= 0 {
		return defaultRecalcBatchSize
	}
	return batchSize
}

func normalizeWorkerCount(maxWorkers, taskCount int) int {
	workers := maxWorkers
	if workers <= 0 {
		workers = defaultRecalcMaxWorkers
	}
	if workers > maxRecalcWorkers {
		workers = maxRecalcWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
