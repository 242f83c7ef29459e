package domain

import "time"

// Kiosk is an inventory record for a self-service terminal. Plain CRUD; no
// escalation logic applies, but it shares the engine's persistence pattern.
type Kiosk struct {
	ID              string    `json:"id"`
	Location        string    `json:"location"`
	Online          bool      `json:"online"`
	BatteryPercent  int       `json:"batteryPercent"`
	NetworkQuality  string    `json:"networkQuality"`
	LoadLevel       string    `json:"loadLevel"`
	RequestsToday   int       `json:"requestsToday"`
	ComplaintsToday int       `json:"complaintsToday"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
