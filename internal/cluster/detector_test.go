package cluster

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-service/internal/domain"
)

func newTestDetector() *Detector {
	return NewDetector(24*time.Hour, 3, 5)
}

func gasLeakComplaint(id, area string, createdAt time.Time) domain.Complaint {
	return domain.Complaint{
		ID:            id,
		Category:      "Gas",
		ComplaintType: "Gas Leak",
		Area:          area,
		CreatedAt:     createdAt,
	}
}

func TestFirstComplaintUsesBaseline(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	out := d.OnNewComplaint(gasLeakComplaint("c1", "Ward 10", now), nil, nil, now)

	assert.Equal(t, domain.PriorityCritical, out.Priority)
	assert.False(t, out.AreaAlert)
	assert.Empty(t, out.Alerts)
}

func TestWard10GasLeakScenario(t *testing.T) {
	// Five "Gas Leak" complaints for Ward 10 within one hour: the third
	// raises an area alert, the fifth escalates it to Critical.
	d := newTestDetector()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var complaints []domain.Complaint
	var alerts []domain.AreaAlert
	for i := 1; i <= 5; i++ {
		now := base.Add(time.Duration(i) * 10 * time.Minute)
		candidate := gasLeakComplaint(fmt.Sprintf("c%d", i), "Ward 10", now)
		out := d.OnNewComplaint(candidate, complaints, alerts, now)

		switch {
		case i < 3:
			assert.False(t, out.AreaAlert, "complaint %d", i)
		case i < 5:
			assert.True(t, out.AreaAlert, "complaint %d", i)
			assert.GreaterOrEqual(t, out.Priority.Rank(), domain.PriorityHigh.Rank(), "complaint %d", i)
		default:
			assert.True(t, out.AreaAlert)
			assert.Equal(t, domain.PriorityCritical, out.Priority)
		}

		candidate.Priority = out.Priority
		candidate.AreaAlert = out.AreaAlert
		complaints = append(complaints, candidate)
		alerts = out.Alerts
	}

	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.Equal(t, "Ward 10", alert.Area)
	assert.Equal(t, "Gas", alert.Category)
	assert.Equal(t, "Gas Leak", alert.ComplaintType)
	assert.Equal(t, 5, alert.Count)
	assert.Equal(t, domain.AlertLevelCritical, alert.Level)
}

func TestComplaintsOutsideWindowDoNotCluster(t *testing.T) {
	d := newTestDetector()
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(25 * time.Hour)

	existing := []domain.Complaint{gasLeakComplaint("c1", "Ward 10", first)}
	out := d.OnNewComplaint(gasLeakComplaint("c2", "Ward 10", second), existing, nil, second)

	assert.False(t, out.AreaAlert)
	assert.Equal(t, domain.PriorityCritical, out.Priority) // baseline for a gas leak
	assert.Empty(t, out.Alerts)
}

func TestDifferentKeysDoNotCluster(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := []domain.Complaint{
		gasLeakComplaint("c1", "Ward 9", now.Add(-time.Hour)),
		{ID: "c2", Category: "Water", ComplaintType: "Gas Leak", Area: "Ward 10", CreatedAt: now.Add(-time.Hour)},
		{ID: "c3", Category: "Gas", ComplaintType: "No Gas Supply", Area: "Ward 10", CreatedAt: now.Add(-time.Hour)},
	}
	out := d.OnNewComplaint(gasLeakComplaint("c4", "Ward 10", now), existing, nil, now)

	assert.False(t, out.AreaAlert)
}

func TestBaselineCriticalNeverDowngradedAtAlertThreshold(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := []domain.Complaint{
		gasLeakComplaint("c1", "Ward 2", now.Add(-2*time.Hour)),
		gasLeakComplaint("c2", "Ward 2", now.Add(-time.Hour)),
	}
	out := d.OnNewComplaint(gasLeakComplaint("c3", "Ward 2", now), existing, nil, now)

	assert.True(t, out.AreaAlert)
	// count is 3, below critical, but the gas-leak baseline is already
	// Critical and must not fall to High.
	assert.Equal(t, domain.PriorityCritical, out.Priority)
}

func TestLowBaselineEscalatesToHighAtAlertThreshold(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tilt := func(id string, at time.Time) domain.Complaint {
		return domain.Complaint{ID: id, Category: "Electricity", ComplaintType: "Pole tilt", Area: "Ward 4", CreatedAt: at}
	}
	existing := []domain.Complaint{
		tilt("c1", now.Add(-2*time.Hour)),
		tilt("c2", now.Add(-time.Hour)),
	}
	out := d.OnNewComplaint(tilt("c3", now), existing, nil, now)

	assert.True(t, out.AreaAlert)
	assert.Equal(t, domain.PriorityHigh, out.Priority)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, domain.AlertLevelHigh, out.Alerts[0].Level)
	assert.Equal(t, 3, out.Alerts[0].Count)
}

func TestAlertUpsertedInPlace(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	created := now.Add(-time.Hour)

	existing := []domain.Complaint{
		gasLeakComplaint("c1", "Ward 10", now.Add(-3*time.Hour)),
		gasLeakComplaint("c2", "Ward 10", now.Add(-2*time.Hour)),
		gasLeakComplaint("c3", "Ward 10", now.Add(-time.Hour)),
	}
	alerts := []domain.AreaAlert{
		{Area: "Ward 10", Category: "Gas", ComplaintType: "Gas Leak", Count: 3, Level: domain.AlertLevelHigh, CreatedAt: created, UpdatedAt: created},
		{Area: "Ward 4", Category: "Electricity", ComplaintType: "Pole tilt", Count: 3, Level: domain.AlertLevelHigh, CreatedAt: created, UpdatedAt: created},
	}

	out := d.OnNewComplaint(gasLeakComplaint("c4", "Ward 10", now), existing, alerts, now)

	require.Len(t, out.Alerts, 2)
	updated := out.Alerts[0]
	assert.Equal(t, "Ward 10", updated.Area)
	assert.Equal(t, 4, updated.Count)
	assert.Equal(t, domain.AlertLevelHigh, updated.Level)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, now, updated.UpdatedAt)
	// The unrelated alert is untouched.
	assert.Equal(t, alerts[1], out.Alerts[1])
}

func TestNewAlertPrepended(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := []domain.Complaint{
		gasLeakComplaint("c1", "Ward 10", now.Add(-2*time.Hour)),
		gasLeakComplaint("c2", "Ward 10", now.Add(-time.Hour)),
	}
	prior := []domain.AreaAlert{
		{Area: "Ward 4", Category: "Electricity", ComplaintType: "Pole tilt", Count: 3, Level: domain.AlertLevelHigh},
	}

	out := d.OnNewComplaint(gasLeakComplaint("c3", "Ward 10", now), existing, prior, now)

	require.Len(t, out.Alerts, 2)
	assert.Equal(t, "Ward 10", out.Alerts[0].Area)
	assert.Equal(t, "Ward 4", out.Alerts[1].Area)
}

func TestEscalationMonotonicWithinWindow(t *testing.T) {
	// Once the threshold is crossed, every later matching complaint in the
	// window also alerts, and the alert count never decreases.
	d := newTestDetector()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var complaints []domain.Complaint
	var alerts []domain.AreaAlert
	alerted := false
	lastCount := 0
	for i := 1; i <= 8; i++ {
		now := base.Add(time.Duration(i) * time.Minute)
		candidate := gasLeakComplaint(fmt.Sprintf("c%d", i), "Ward 1", now)
		out := d.OnNewComplaint(candidate, complaints, alerts, now)

		if alerted {
			assert.True(t, out.AreaAlert, "complaint %d must remain alerted", i)
		}
		if out.AreaAlert {
			alerted = true
			require.NotEmpty(t, out.Alerts)
			assert.GreaterOrEqual(t, out.Alerts[0].Count, lastCount)
			lastCount = out.Alerts[0].Count
		}

		complaints = append(complaints, candidate)
		alerts = out.Alerts
		// Single alert per composite key, always.
		keyCount := 0
		for _, a := range alerts {
			if a.Matches("Ward 1", "Gas", "Gas Leak") {
				keyCount++
			}
		}
		assert.LessOrEqual(t, keyCount, 1)
	}
}

func TestInputAlertsNotMutated(t *testing.T) {
	d := newTestDetector()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	existing := []domain.Complaint{
		gasLeakComplaint("c1", "Ward 10", now.Add(-2*time.Hour)),
		gasLeakComplaint("c2", "Ward 10", now.Add(-time.Hour)),
		gasLeakComplaint("c3", "Ward 10", now.Add(-30*time.Minute)),
	}
	alerts := []domain.AreaAlert{
		{Area: "Ward 10", Category: "Gas", ComplaintType: "Gas Leak", Count: 3, Level: domain.AlertLevelHigh},
	}

	_ = d.OnNewComplaint(gasLeakComplaint("c4", "Ward 10", now), existing, alerts, now)

	assert.Equal(t, 3, alerts[0].Count)
	assert.Equal(t, domain.AlertLevelHigh, alerts[0].Level)
}
