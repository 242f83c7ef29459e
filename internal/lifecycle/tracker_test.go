package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-service/internal/domain"
)

func countCurrent(stages []domain.StageEvent) int {
	n := 0
	for _, ev := range stages {
		if ev.Status == domain.StageCurrent {
			n++
		}
	}
	return n
}

func TestSeed(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stages := Seed("Submitted", now)

	require.Len(t, stages, 1)
	assert.Equal(t, "Submitted", stages[0].Stage)
	assert.Equal(t, domain.StageCurrent, stages[0].Status)
	assert.Equal(t, now, stages[0].UpdatedAt)
}

func TestAdvanceAppendsAndCompletesPredecessor(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	stages := Seed("Submitted", t0)
	stages, changed := Advance(stages, "Submitted", "Under Review", t1, false)
	require.True(t, changed)
	stages, changed = Advance(stages, "Under Review", "Completed", t2, false)
	require.True(t, changed)

	require.Len(t, stages, 3)
	assert.Equal(t, 1, countCurrent(stages))

	assert.Equal(t, "Submitted", stages[0].Stage)
	assert.Equal(t, domain.StageCompleted, stages[0].Status)
	assert.Equal(t, "Under Review", stages[1].Stage)
	assert.Equal(t, domain.StageCompleted, stages[1].Status)
	assert.Equal(t, t2, stages[1].UpdatedAt)
	assert.Equal(t, "Completed", stages[2].Stage)
	assert.Equal(t, domain.StageCurrent, stages[2].Status)
}

func TestAdvanceIdempotentSameLabel(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stages := Seed("Pending", t0)

	next, changed := Advance(stages, "Pending", "Pending", t0.Add(time.Minute), true)
	assert.False(t, changed)
	assert.Len(t, next, 1)
	assert.Equal(t, 1, countCurrent(next))
}

func TestAdvanceNonIdempotentAppendsDuplicate(t *testing.T) {
	// Service requests do not absorb repeated labels; the audit trail
	// records every transition the officer triggered.
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stages := Seed("Submitted", t0)

	next, changed := Advance(stages, "Submitted", "Submitted", t0.Add(time.Minute), false)
	assert.True(t, changed)
	assert.Len(t, next, 2)
	assert.Equal(t, 1, countCurrent(next))
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	original := Seed("Submitted", t0)

	_, _ = Advance(original, "Submitted", "Under Review", t0.Add(time.Hour), false)

	require.Len(t, original, 1)
	assert.Equal(t, domain.StageCurrent, original[0].Status)
	assert.Equal(t, t0, original[0].UpdatedAt)
}

func TestAdvanceHistoryNeverShrinks(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stages := Seed("Pending", t0)
	current := "Pending"

	labels := []string{"In Progress", "In Progress", "Resolved", "Closed", "Closed"}
	prevLen := len(stages)
	for i, label := range labels {
		next, changed := Advance(stages, current, label, t0.Add(time.Duration(i)*time.Minute), true)
		assert.GreaterOrEqual(t, len(next), prevLen)
		assert.Equal(t, 1, countCurrent(next))
		if changed {
			current = label
		}
		stages = next
		prevLen = len(next)
	}
	// Two repeats absorbed, three real transitions recorded.
	assert.Len(t, stages, 4)
}
