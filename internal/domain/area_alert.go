package domain

import "time"

// AlertLevel grades an area alert by how many matching complaints clustered.
type AlertLevel string

const (
	AlertLevelHigh     AlertLevel = "High"
	AlertLevelCritical AlertLevel = "Critical"
)

// AreaAlert aggregates complaints of one kind clustering in one location.
// The composite key is (Area, Category, ComplaintType); at most one alert
// exists per key, and a new qualifying complaint updates it in place.
type AreaAlert struct {
	Area          string     `json:"area"`
	Category      string     `json:"category"`
	ComplaintType string     `json:"complaintType"`
	Count         int        `json:"count"`
	Level         AlertLevel `json:"level"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Matches reports whether the alert covers the given composite key.
func (a AreaAlert) Matches(area, category, complaintType string) bool {
	return a.Area == area && a.Category == category && a.ComplaintType == complaintType
}
