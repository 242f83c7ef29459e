package dto

import (
	"time"

	"github.com/spec-kit/civic-service/internal/domain"
)

// CreateServiceRequestRequest payload.
type CreateServiceRequestRequest struct {
	CitizenName string `json:"citizen_name"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	ServiceType string `json:"service_type"`
	Address     string `json:"address"`
}

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	CitizenName   string `json:"citizen_name"`
	Phone         string `json:"phone"`
	Category      string `json:"category"`
	ComplaintType string `json:"complaint_type"`
	Area          string `json:"area"`
	Description   string `json:"description"`
}

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStageRequest payload for stage transitions.
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// StageEventResponse mirrors one audit-trail entry.
type StageEventResponse struct {
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceRequestResponse full service request view.
type ServiceRequestResponse struct {
	ID           string               `json:"id"`
	CitizenName  string               `json:"citizen_name"`
	Phone        string               `json:"phone"`
	Category     string               `json:"category"`
	ServiceType  string               `json:"service_type"`
	Address      string               `json:"address"`
	Status       string               `json:"status"`
	CurrentStage string               `json:"current_stage"`
	Stages       []StageEventResponse `json:"stages"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ComplaintResponse full complaint view.
type ComplaintResponse struct {
	ID            string               `json:"id"`
	CitizenName   string               `json:"citizen_name"`
	Phone         string               `json:"phone"`
	Category      string               `json:"category"`
	ComplaintType string               `json:"complaint_type"`
	Area          string               `json:"area"`
	Description   string               `json:"description"`
	Priority      string               `json:"priority"`
	Status        string               `json:"status"`
	AreaAlert     bool                 `json:"area_alert"`
	CurrentStage  string               `json:"current_stage"`
	Stages        []StageEventResponse `json:"stages"`
	CreatedAt     time.Time            `json:"created_at"`
}

// AreaAlertResponse aggregate alert view.
type AreaAlertResponse struct {
	Area          string    `json:"area"`
	Category      string    `json:"category"`
	ComplaintType string    `json:"complaint_type"`
	Count         int       `json:"count"`
	Level         string    `json:"level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromServiceRequest maps the domain entity.
func FromServiceRequest(r *domain.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:           r.ID,
		CitizenName:  r.CitizenName,
		Phone:        r.Phone,
		Category:     r.Category,
		ServiceType:  r.ServiceType,
		Address:      r.Address,
		Status:       string(r.Status),
		CurrentStage: r.CurrentStage,
		Stages:       fromStages(r.Stages),
		CreatedAt:    r.CreatedAt,
	}
}

// FromComplaint maps the domain entity.
func FromComplaint(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            c.ID,
		CitizenName:   c.CitizenName,
		Phone:         c.Phone,
		Category:      c.Category,
		ComplaintType: c.ComplaintType,
		Area:          c.Area,
		Description:   c.Description,
		Priority:      string(c.Priority),
		Status:        string(c.Status),
		AreaAlert:     c.AreaAlert,
		CurrentStage:  c.CurrentStage,
		Stages:        fromStages(c.Stages),
		CreatedAt:     c.CreatedAt,
	}
}

// FromAreaAlert maps the domain entity.
func FromAreaAlert(a domain.AreaAlert) AreaAlertResponse {
	return AreaAlertResponse{
		Area:          a.Area,
		Category:      a.Category,
		ComplaintType: a.ComplaintType,
		Count:         a.Count,
		Level:         string(a.Level),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func fromStages(stages []domain.StageEvent) []StageEventResponse {
	out := make([]StageEventResponse, 0, len(stages))
	for _, ev := range stages {
		out = append(out, StageEventResponse{
			Stage:     ev.Stage,
			Status:    string(ev.Status),
			UpdatedAt: ev.UpdatedAt,
		})
	}
	return out
}
