package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
	ComplaintStatusClosed     ComplaintStatus = "Closed"
)

// Complaint is a citizen-reported problem filed against a municipal
// department. Priority and AreaAlert are computed by the engine at creation
// and frozen: later status or stage changes must never recompute them.
type Complaint struct {
	ID            string          `json:"id"`
	CitizenName   string          `json:"citizenName"`
	Phone         string          `json:"phone"`
	Category      string          `json:"category"`
	ComplaintType string          `json:"complaintType"`
	Area          string          `json:"area"`
	Description   string          `json:"description"`
	Priority      Priority        `json:"priority"`
	Status        ComplaintStatus `json:"status"`
	AreaAlert     bool            `json:"areaAlert"`
	CurrentStage  string          `json:"currentStage"`
	Stages        []StageEvent    `json:"stages"`
	CreatedAt     time.Time       `json:"createdAt"`
}
