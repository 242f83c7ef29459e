// Package cluster detects when many citizens in one area report the same
// kind of problem inside a rolling time window, escalating complaint
// priority and raising area-impact alerts for administrators.
package cluster

import (
	"time"

	"github.com/spec-kit/civic-service/internal/classify"
	"github.com/spec-kit/civic-service/internal/domain"
)

// Detector evaluates each new complaint against recent history. Thresholds
// and window are fixed at construction; source behavior is 24h / 3 / 5.
type Detector struct {
	window            time.Duration
	alertThreshold    int
	criticalThreshold int
}

// NewDetector constructs a detector with the given clustering window and
// escalation thresholds.
func NewDetector(window time.Duration, alertThreshold, criticalThreshold int) *Detector {
	return &Detector{
		window:            window,
		alertThreshold:    alertThreshold,
		criticalThreshold: criticalThreshold,
	}
}

// Outcome is the detector's verdict for one candidate complaint.
type Outcome struct {
	Priority  domain.Priority
	AreaAlert bool
	// Alerts is the full replacement alert collection; identical to the
	// input when no alert was raised or updated.
	Alerts []domain.AreaAlert
}

// OnNewComplaint classifies the candidate, counts matching complaints with
// the same (category, complaintType, area) inside the trailing window
// ending at now, and applies the escalation policy:
//
//	count >= criticalThreshold: priority Critical, area alert
//	count >= alertThreshold:    area alert; priority High unless the
//	                            baseline was already Critical
//	otherwise:                  baseline priority, no alert
//
// When an alert fires, the (area, category, complaintType) alert is updated
// in place if present, otherwise prepended. The scan is linear over the
// existing complaints, which is fine at kiosk scale.
func (d *Detector) OnNewComplaint(candidate domain.Complaint, complaints []domain.Complaint, alerts []domain.AreaAlert, now time.Time) Outcome {
	baseline := classify.Priority(candidate.Category, candidate.ComplaintType)

	cutoff := now.Add(-d.window)
	count := 1 // the candidate itself
	for _, existing := range complaints {
		if existing.Category != candidate.Category ||
			existing.ComplaintType != candidate.ComplaintType ||
			existing.Area != candidate.Area {
			continue
		}
		if existing.CreatedAt.Before(cutoff) || existing.CreatedAt.After(now) {
			continue
		}
		count++
	}

	outcome := Outcome{Priority: baseline, Alerts: alerts}
	switch {
	case count >= d.criticalThreshold:
		outcome.Priority = domain.PriorityCritical
		outcome.AreaAlert = true
	case count >= d.alertThreshold:
		outcome.AreaAlert = true
		if baseline != domain.PriorityCritical {
			outcome.Priority = domain.PriorityHigh
		}
	default:
		return outcome
	}

	level := domain.AlertLevelHigh
	if count >= d.criticalThreshold {
		level = domain.AlertLevelCritical
	}
	outcome.Alerts = upsertAlert(alerts, candidate, count, level, now)
	return outcome
}

func upsertAlert(alerts []domain.AreaAlert, candidate domain.Complaint, count int, level domain.AlertLevel, now time.Time) []domain.AreaAlert {
	next := make([]domain.AreaAlert, len(alerts))
	copy(next, alerts)

	for i := range next {
		if next[i].Matches(candidate.Area, candidate.Category, candidate.ComplaintType) {
			next[i].Count = count
			next[i].Level = level
			next[i].UpdatedAt = now
			return next
		}
	}

	fresh := domain.AreaAlert{
		Area:          candidate.Area,
		Category:      candidate.Category,
		ComplaintType: candidate.ComplaintType,
		Count:         count,
		Level:         level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return append([]domain.AreaAlert{fresh}, next...)
}
