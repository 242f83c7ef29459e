package engine

import (
	"time"

	"github.com/spec-kit/civic-service/internal/domain"
)

// Fixed initial dataset written to the store the first time a key is
// loaded. Ticket collections start empty; the kiosk inventory ships with
// the known terminals so every instance reports the same fleet.

func seedServices() []domain.ServiceRequest {
	return []domain.ServiceRequest{}
}

func seedComplaints() []domain.Complaint {
	return []domain.Complaint{}
}

func seedAreaAlerts() []domain.AreaAlert {
	return []domain.AreaAlert{}
}

func seedKiosks(now time.Time) []domain.Kiosk {
	return []domain.Kiosk{
		{
			ID:             "KSK-001",
			Location:       "Municipal Office, Main Hall",
			Online:         true,
			BatteryPercent: 100,
			NetworkQuality: "Good",
			LoadLevel:      "Low",
			UpdatedAt:      now,
		},
		{
			ID:             "KSK-002",
			Location:       "Ward 10 Community Center",
			Online:         true,
			BatteryPercent: 87,
			NetworkQuality: "Fair",
			LoadLevel:      "Medium",
			UpdatedAt:      now,
		},
		{
			ID:             "KSK-003",
			Location:       "City Bus Terminal",
			Online:         false,
			BatteryPercent: 12,
			NetworkQuality: "Poor",
			LoadLevel:      "Low",
			UpdatedAt:      now,
		},
	}
}
