package dto

import (
	"time"

	"github.com/spec-kit/civic-service/internal/domain"
)

// AddKioskRequest payload.
type AddKioskRequest struct {
	ID             string `json:"id"`
	Location       string `json:"location"`
	Online         bool   `json:"online"`
	BatteryPercent int    `json:"battery_percent"`
	NetworkQuality string `json:"network_quality"`
	LoadLevel      string `json:"load_level"`
}

// UpdateKioskRequest partial update payload.
type UpdateKioskRequest struct {
	Online          *bool   `json:"online"`
	BatteryPercent  *int    `json:"battery_percent"`
	NetworkQuality  *string `json:"network_quality"`
	LoadLevel       *string `json:"load_level"`
	RequestsDelta   int     `json:"requests_delta"`
	ComplaintsDelta int     `json:"complaints_delta"`
}

// KioskResponse terminal inventory view.
type KioskResponse struct {
	ID              string    `json:"id"`
	Location        string    `json:"location"`
	Online          bool      `json:"online"`
	BatteryPercent  int       `json:"battery_percent"`
	NetworkQuality  string    `json:"network_quality"`
	LoadLevel       string    `json:"load_level"`
	RequestsToday   int       `json:"requests_today"`
	ComplaintsToday int       `json:"complaints_today"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FromKiosk maps the domain entity.
func FromKiosk(k *domain.Kiosk) KioskResponse {
	return KioskResponse{
		ID:              k.ID,
		Location:        k.Location,
		Online:          k.Online,
		BatteryPercent:  k.BatteryPercent,
		NetworkQuality:  k.NetworkQuality,
		LoadLevel:       k.LoadLevel,
		RequestsToday:   k.RequestsToday,
		ComplaintsToday: k.ComplaintsToday,
		UpdatedAt:       k.UpdatedAt,
	}
}
