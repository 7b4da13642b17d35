package result

import (
	"errors"
	"fmt"

	"github.com/strideleague/marathon-fantasy/internal/domain/racetime"
)

var ErrInvalidRecordTransition = errors.New("invalid record status transition")

// Status classifies a competitor's participation in one race.
type Status string

const (
	StatusFinished Status = "finished"
	StatusDNF      Status = "dnf"
	StatusDNS      Status = "dns"
)

// RecordStatus tracks the confirmation workflow of a record-eligible
// performance: none -> provisional -> confirmed | rejected.
type RecordStatus string

const (
	RecordStatusNone        RecordStatus = "none"
	RecordStatusProvisional RecordStatus = "provisional"
	RecordStatusConfirmed   RecordStatus = "confirmed"
	RecordStatusRejected    RecordStatus = "rejected"
)

// RecordFlags carries the externally-maintained record markers for one
// result. The scoring engine only reads them; the record-reference
// collaborator sets the flags and drives the status transitions.
type RecordFlags struct {
	World  bool
	Course bool
	Status RecordStatus
}

// Transition advances the record confirmation state machine. Only the
// forward edges are legal; the engine itself never calls this, it exists so
// the ingestion side shares one definition of the workflow.
func (s RecordStatus) Transition(next RecordStatus) (RecordStatus, error) {
	allowed := map[RecordStatus][]RecordStatus{
		RecordStatusNone:        {RecordStatusProvisional},
		RecordStatusProvisional: {RecordStatusConfirmed, RecordStatusRejected},
	}
	for _, candidate := range allowed[s] {
		if candidate == next {
			return next, nil
		}
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidRecordTransition, s, next)
}

// Splits maps checkpoint names to recorded elapsed times. Any subset of
// checkpoints may be present; absence means the mat was missed or the data
// has not arrived yet.
type Splits map[racetime.Checkpoint]racetime.TimeValue

// Get returns the split for a checkpoint when present.
func (s Splits) Get(cp racetime.Checkpoint) (racetime.TimeValue, bool) {
	value, ok := s[cp]
	return value, ok
}

// RaceResult is one competitor's raw timing row for one race. A nil Finish
// means the competitor did not complete the course.
type RaceResult struct {
	RaceID       string
	CompetitorID string
	Finish       *racetime.TimeValue
	Splits       Splits
	Records      RecordFlags
}

// Classify derives the participation status from the data actually present.
// It is computed fresh on every call rather than cached on the row, so a
// later split correction cannot leave a stale classification behind.
func Classify(r RaceResult) Status {
	if r.Finish != nil {
		return StatusFinished
	}
	if len(r.Splits) > 0 {
		return StatusDNF
	}
	return StatusDNS
}
