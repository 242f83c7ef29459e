package engine

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/civic-service/internal/domain"
	"github.com/spec-kit/civic-service/internal/persistence"
	apperrors "github.com/spec-kit/civic-service/pkg/util"
)

// KioskInput describes a new terminal registration.
type KioskInput struct {
	ID             string
	Location       string
	Online         bool
	BatteryPercent int
	NetworkQuality string
	LoadLevel      string
}

// KioskUpdate carries partial health/counter updates. Nil fields are left
// unchanged; counter deltas accumulate onto the daily totals.
type KioskUpdate struct {
	Online          *bool
	BatteryPercent  *int
	NetworkQuality  *string
	LoadLevel       *string
	RequestsDelta   int
	ComplaintsDelta int
}

// AddKiosk registers a terminal in the inventory. Ids are caller-assigned
// (terminals know their own identity); duplicates are rejected.
func (e *Engine) AddKiosk(ctx context.Context, input KioskInput) (*domain.Kiosk, error) {
	if err := validateRequired(map[string]string{
		"id":       input.ID,
		"location": input.Location,
	}); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, k := range e.kiosks {
		if k.ID == input.ID {
			return nil, apperrors.NewValidationError("kiosk id already registered", map[string]any{"id": input.ID})
		}
	}

	kiosk := domain.Kiosk{
		ID:             strings.TrimSpace(input.ID),
		Location:       strings.TrimSpace(input.Location),
		Online:         input.Online,
		BatteryPercent: input.BatteryPercent,
		NetworkQuality: input.NetworkQuality,
		LoadLevel:      input.LoadLevel,
		UpdatedAt:      e.now(),
	}

	next := append(copySlice(e.kiosks), kiosk)
	if err := e.persist(ctx, persistence.KeyKiosks, next); err != nil {
		return nil, err
	}
	e.kiosks = next

	e.logger.Info("kiosk registered", zap.String("id", kiosk.ID), zap.String("location", kiosk.Location))
	return &kiosk, nil
}

// UpdateKiosk applies a partial health/counter update to a terminal.
func (e *Engine) UpdateKiosk(ctx context.Context, id string, update KioskUpdate) (*domain.Kiosk, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.kiosks {
		if e.kiosks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFound("kiosk", map[string]any{"id": id})
	}

	next := copySlice(e.kiosks)
	kiosk := next[idx]
	if update.Online != nil {
		kiosk.Online = *update.Online
	}
	if update.BatteryPercent != nil {
		kiosk.BatteryPercent = *update.BatteryPercent
	}
	if update.NetworkQuality != nil {
		kiosk.NetworkQuality = *update.NetworkQuality
	}
	if update.LoadLevel != nil {
		kiosk.LoadLevel = *update.LoadLevel
	}
	kiosk.RequestsToday += update.RequestsDelta
	kiosk.ComplaintsToday += update.ComplaintsDelta
	kiosk.UpdatedAt = e.now()
	next[idx] = kiosk

	if err := e.persist(ctx, persistence.KeyKiosks, next); err != nil {
		return nil, err
	}
	e.kiosks = next
	return &kiosk, nil
}

// ListKiosks returns the terminal inventory sorted by id.
func (e *Engine) ListKiosks() []domain.Kiosk {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := copySlice(e.kiosks)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
