// Package lifecycle maintains the ordered stage history of a ticket: an
// append-only audit trail in which exactly one event is Current and all
// predecessors are Completed.
package lifecycle

import (
	"time"

	"github.com/spec-kit/civic-service/internal/domain"
)

// Advance closes the active stage at now and appends label as the new
// Current event, returning the updated history. When idempotent is set and
// label already equals currentStage the history is returned unchanged; this
// absorbs repeated confirmation taps from the kiosk UI.
//
// The input slice is never mutated; callers receive a fresh history they
// can swap in atomically.
func Advance(stages []domain.StageEvent, currentStage, label string, now time.Time, idempotent bool) ([]domain.StageEvent, bool) {
	if idempotent && label == currentStage {
		return stages, false
	}

	next := make([]domain.StageEvent, 0, len(stages)+1)
	for _, ev := range stages {
		if ev.Status == domain.StageCurrent {
			ev.Status = domain.StageCompleted
			ev.UpdatedAt = now
		}
		next = append(next, ev)
	}
	next = append(next, domain.StageEvent{
		Stage:     label,
		Status:    domain.StageCurrent,
		UpdatedAt: now,
	})
	return next, true
}

// Seed returns the initial one-event history for a newly created ticket.
func Seed(label string, now time.Time) []domain.StageEvent {
	return []domain.StageEvent{{
		Stage:     label,
		Status:    domain.StageCurrent,
		UpdatedAt: now,
	}}
}
