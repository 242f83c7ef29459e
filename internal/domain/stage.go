package domain

import "time"

// StageStatus marks a stage event as the active step or a finished one.
type StageStatus string

const (
	StageCurrent   StageStatus = "Current"
	StageCompleted StageStatus = "Completed"
)

// StageEvent is one entry in a ticket's append-only stage history. The
// sequence is the full audit trail: at most one event is Current at a time,
// all predecessors are Completed, and entries are never removed or reordered.
type StageEvent struct {
	Stage     string      `json:"stage"`
	Status    StageStatus `json:"status"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
