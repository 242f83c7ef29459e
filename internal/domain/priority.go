package domain

// Priority enumerates complaint severity. It is computed by the engine at
// creation time, never supplied by the citizen, and never revised afterward.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Rank orders priorities for sorting; higher is more urgent. Unknown values
// rank below Low.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Valid reports whether p is one of the four defined priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}
