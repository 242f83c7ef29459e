package domain

import "time"

// RequestStatus enumerates lifecycle states for service requests. For
// requests the status mirrors the current stage label; both fields move in
// lockstep on every stage update.
type RequestStatus string

const (
	RequestStatusSubmitted       RequestStatus = "Submitted"
	RequestStatusUnderReview     RequestStatus = "Under Review"
	RequestStatusVerification    RequestStatus = "Verification"
	RequestStatusApprovalPending RequestStatus = "Approval Pending"
	RequestStatusCompleted       RequestStatus = "Completed"
	RequestStatusRejected        RequestStatus = "Rejected"
)

// ServiceRequest is a citizen's application for a municipal service.
// Created once via the engine, mutated only through stage-update
// operations, never deleted.
type ServiceRequest struct {
	ID           string        `json:"id"`
	CitizenName  string        `json:"citizenName"`
	Phone        string        `json:"phone"`
	Category     string        `json:"category"`
	ServiceType  string        `json:"serviceType"`
	Address      string        `json:"address"`
	Status       RequestStatus `json:"status"`
	CurrentStage string        `json:"currentStage"`
	Stages       []StageEvent  `json:"stages"`
	CreatedAt    time.Time     `json:"createdAt"`
}
