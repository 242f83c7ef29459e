// Package engine owns the authoritative collections of service requests,
// complaints, area alerts and kiosks. Every mutation is serialized, written
// to the durable store and broadcast before it becomes visible to readers;
// a failed write leaves the pre-call state intact.
package engine

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/civic-service/internal/cluster"
	"github.com/spec-kit/civic-service/internal/domain"
	"github.com/spec-kit/civic-service/internal/lifecycle"
	"github.com/spec-kit/civic-service/internal/persistence"
	apperrors "github.com/spec-kit/civic-service/pkg/util"
)

// Engine is the ticket store. All mutating operations take the write lock;
// reads serve copies from a consistent snapshot under the read lock.
type Engine struct {
	store    persistence.Store
	notifier persistence.Notifier
	detector *cluster.Detector
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.RWMutex
	services   []domain.ServiceRequest
	complaints []domain.Complaint
	alerts     []domain.AreaAlert
	kiosks     []domain.Kiosk
}

// Dependencies bundles collaborators for the engine.
type Dependencies struct {
	Store    persistence.Store
	Notifier persistence.Notifier
	Detector *cluster.Detector
	Logger   *zap.Logger
	// Clock overrides time.Now, used by tests.
	Clock func() time.Time
}

// New constructs the engine. Call Init before serving operations.
func New(deps Dependencies) *Engine {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:    deps.Store,
		notifier: deps.Notifier,
		detector: deps.Detector,
		logger:   logger,
		now:      clock,
	}
}

// Init loads all collections from the durable store. A key that has never
// been written is seeded with the fixed initial dataset, which is itself
// persisted so every terminal converges to the same baseline.
func (e *Engine) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := loadOrSeed(ctx, e.store, persistence.KeyServices, &e.services, seedServices()); err != nil {
		return err
	}
	if err := loadOrSeed(ctx, e.store, persistence.KeyComplaints, &e.complaints, seedComplaints()); err != nil {
		return err
	}
	if err := loadOrSeed(ctx, e.store, persistence.KeyAreaAlerts, &e.alerts, seedAreaAlerts()); err != nil {
		return err
	}
	if err := loadOrSeed(ctx, e.store, persistence.KeyKiosks, &e.kiosks, seedKiosks(e.now())); err != nil {
		return err
	}

	e.logger.Info("engine initialized",
		zap.Int("services", len(e.services)),
		zap.Int("complaints", len(e.complaints)),
		zap.Int("areaAlerts", len(e.alerts)),
		zap.Int("kiosks", len(e.kiosks)),
	)
	return nil
}

func loadOrSeed[T any](ctx context.Context, store persistence.Store, key string, target *[]T, seed []T) error {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if !ok {
		data, err := json.Marshal(seed)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if err := store.Save(ctx, key, data); err != nil {
			return apperrors.NewStorageError(err)
		}
		*target = seed
		return nil
	}
	var loaded []T
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return apperrors.NewInternalError(err)
	}
	*target = loaded
	return nil
}

// ServiceRequestInput describes a citizen submission.
type ServiceRequestInput struct {
	CitizenName string
	Phone       string
	Category    string
	ServiceType string
	Address     string
}

// ComplaintInput describes a citizen complaint.
type ComplaintInput struct {
	CitizenName   string
	Phone         string
	Category      string
	ComplaintType string
	Area          string
	Description   string
}

// ComplaintFilter narrows QueryComplaints results. Empty fields match all.
type ComplaintFilter struct {
	Category   string
	Priority   domain.Priority
	SearchTerm string
}

// CreateServiceRequest registers a new service request with a single
// Submitted stage event, persists it and broadcasts the change.
func (e *Engine) CreateServiceRequest(ctx context.Context, input ServiceRequestInput) (*domain.ServiceRequest, error) {
	if err := validateRequired(map[string]string{
		"citizenName": input.CitizenName,
		"phone":       input.Phone,
		"category":    input.Category,
		"serviceType": input.ServiceType,
	}); err != nil {
		return nil, err
	}

	now := e.now()
	request := domain.ServiceRequest{
		ID:           newID("SRQ", now),
		CitizenName:  strings.TrimSpace(input.CitizenName),
		Phone:        strings.TrimSpace(input.Phone),
		Category:     input.Category,
		ServiceType:  input.ServiceType,
		Address:      strings.TrimSpace(input.Address),
		Status:       domain.RequestStatusSubmitted,
		CurrentStage: string(domain.RequestStatusSubmitted),
		Stages:       lifecycle.Seed(string(domain.RequestStatusSubmitted), now),
		CreatedAt:    now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := append(copySlice(e.services), request)
	if err := e.persist(ctx, persistence.KeyServices, next); err != nil {
		return nil, err
	}
	e.services = next

	e.logger.Info("service request created",
		zap.String("id", request.ID),
		zap.String("category", request.Category),
	)
	return &request, nil
}

// CreateComplaint runs the clustering detector over current state, applies
// the computed priority and alert flag, and persists the complaint together
// with the alert collection when it changed. Both keys are broadcast.
func (e *Engine) CreateComplaint(ctx context.Context, input ComplaintInput) (*domain.Complaint, error) {
	if err := validateRequired(map[string]string{
		"citizenName":   input.CitizenName,
		"phone":         input.Phone,
		"category":      input.Category,
		"complaintType": input.ComplaintType,
		"area":          input.Area,
	}); err != nil {
		return nil, err
	}

	now := e.now()
	complaint := domain.Complaint{
		ID:            newID("CMP", now),
		CitizenName:   strings.TrimSpace(input.CitizenName),
		Phone:         strings.TrimSpace(input.Phone),
		Category:      input.Category,
		ComplaintType: input.ComplaintType,
		Area:          input.Area,
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.ComplaintStatusPending,
		CurrentStage:  string(domain.ComplaintStatusPending),
		Stages:        lifecycle.Seed(string(domain.ComplaintStatusPending), now),
		CreatedAt:     now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	outcome := e.detector.OnNewComplaint(complaint, e.complaints, e.alerts, now)
	complaint.Priority = outcome.Priority
	complaint.AreaAlert = outcome.AreaAlert

	nextComplaints := append(copySlice(e.complaints), complaint)
	if err := e.persist(ctx, persistence.KeyComplaints, nextComplaints); err != nil {
		return nil, err
	}
	if outcome.AreaAlert {
		if err := e.persist(ctx, persistence.KeyAreaAlerts, outcome.Alerts); err != nil {
			return nil, err
		}
		e.alerts = outcome.Alerts
	}
	e.complaints = nextComplaints

	e.logger.Info("complaint created",
		zap.String("id", complaint.ID),
		zap.String("area", complaint.Area),
		zap.String("priority", string(complaint.Priority)),
		zap.Bool("areaAlert", complaint.AreaAlert),
	)
	return &complaint, nil
}

// UpdateServiceStatus advances a service request to the given status. For
// requests status and stage move in lockstep, so this is stage advancement
// under the status label.
func (e *Engine) UpdateServiceStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	return e.advanceService(ctx, id, string(status))
}

// UpdateServiceStage advances a service request to the given stage label
// and overwrites status to match it.
func (e *Engine) UpdateServiceStage(ctx context.Context, id, label string) (*domain.ServiceRequest, error) {
	return e.advanceService(ctx, id, label)
}

func (e *Engine) advanceService(ctx context.Context, id, label string) (*domain.ServiceRequest, error) {
	if strings.TrimSpace(label) == "" {
		return nil, apperrors.NewValidationError("stage label required", nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.services {
		if e.services[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFound("service request", map[string]any{"id": id})
	}

	now := e.now()
	next := copySlice(e.services)
	request := next[idx]
	request.Stages, _ = lifecycle.Advance(request.Stages, request.CurrentStage, label, now, false)
	request.CurrentStage = label
	request.Status = domain.RequestStatus(label)
	next[idx] = request

	if err := e.persist(ctx, persistence.KeyServices, next); err != nil {
		return nil, err
	}
	e.services = next

	e.logger.Info("service request advanced",
		zap.String("id", id),
		zap.String("stage", label),
	)
	return &request, nil
}

// UpdateComplaintStatus sets the complaint status and records the matching
// stage event. Priority and the area-alert flag are never touched.
func (e *Engine) UpdateComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	switch status {
	case domain.ComplaintStatusPending, domain.ComplaintStatusInProgress,
		domain.ComplaintStatusResolved, domain.ComplaintStatusClosed:
	default:
		return nil, apperrors.NewValidationError("invalid complaint status", map[string]any{"status": status})
	}
	return e.advanceComplaint(ctx, id, string(status), &status)
}

// UpdateComplaintStage advances the complaint to the given stage label.
// Re-submitting the current label is a no-op.
func (e *Engine) UpdateComplaintStage(ctx context.Context, id, label string) (*domain.Complaint, error) {
	if strings.TrimSpace(label) == "" {
		return nil, apperrors.NewValidationError("stage label required", nil)
	}
	return e.advanceComplaint(ctx, id, label, nil)
}

func (e *Engine) advanceComplaint(ctx context.Context, id, label string, status *domain.ComplaintStatus) (*domain.Complaint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.complaints {
		if e.complaints[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}

	now := e.now()
	next := copySlice(e.complaints)
	complaint := next[idx]

	stages, advanced := lifecycle.Advance(complaint.Stages, complaint.CurrentStage, label, now, true)
	statusChanged := status != nil && complaint.Status != *status
	if !advanced && !statusChanged {
		return &complaint, nil
	}
	if advanced {
		complaint.Stages = stages
		complaint.CurrentStage = label
	}
	if status != nil {
		complaint.Status = *status
	}
	next[idx] = complaint

	if err := e.persist(ctx, persistence.KeyComplaints, next); err != nil {
		return nil, err
	}
	e.complaints = next

	e.logger.Info("complaint advanced",
		zap.String("id", id),
		zap.String("stage", complaint.CurrentStage),
		zap.String("status", string(complaint.Status)),
	)
	return &complaint, nil
}

// QueryComplaints filters and sorts complaints: priority descending, then
// newest first. Pure projection over in-memory state.
func (e *Engine) QueryComplaints(filter ComplaintFilter) []domain.Complaint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))
	results := make([]domain.Complaint, 0, len(e.complaints))
	for _, c := range e.complaints {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		if term != "" && !complaintMatches(c, term) {
			continue
		}
		results = append(results, c)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Priority.Rank() != results[j].Priority.Rank() {
			return results[i].Priority.Rank() > results[j].Priority.Rank()
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results
}

func complaintMatches(c domain.Complaint, term string) bool {
	for _, field := range []string{c.ID, c.CitizenName, c.ComplaintType, c.Area, c.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// GetServiceRequest returns a copy of the request with the given id.
func (e *Engine) GetServiceRequest(id string) (*domain.ServiceRequest, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.services {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFound("service request", map[string]any{"id": id})
}

// GetComplaint returns a copy of the complaint with the given id.
func (e *Engine) GetComplaint(id string) (*domain.Complaint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.complaints {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
}

// ListServiceRequests returns all service requests, newest first.
func (e *Engine) ListServiceRequests() []domain.ServiceRequest {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := copySlice(e.services)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ListAreaAlerts returns the current alert collection.
func (e *Engine) ListAreaAlerts() []domain.AreaAlert {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copySlice(e.alerts)
}

// Reload replaces the collection behind key with the store's current
// contents, wholesale. Used by the sync bridge when another writer mutated
// the store; last writer wins at collection granularity.
func (e *Engine) Reload(ctx context.Context, key string) error {
	raw, ok, err := e.store.Load(ctx, key)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch key {
	case persistence.KeyServices:
		return replaceCollection(raw, &e.services)
	case persistence.KeyComplaints:
		return replaceCollection(raw, &e.complaints)
	case persistence.KeyAreaAlerts:
		return replaceCollection(raw, &e.alerts)
	case persistence.KeyKiosks:
		return replaceCollection(raw, &e.kiosks)
	default:
		return nil
	}
}

func replaceCollection[T any](raw []byte, target *[]T) error {
	var loaded []T
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return apperrors.NewInternalError(err)
	}
	*target = loaded
	return nil
}

// persist marshals the collection, writes it to the durable store and
// broadcasts the key. Callers swap in-memory state only after it returns
// nil, which keeps failed operations invisible to readers.
func (e *Engine) persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := e.store.Save(ctx, key, data); err != nil {
		return apperrors.NewStorageError(err)
	}
	if e.notifier != nil {
		if err := e.notifier.Publish(ctx, key); err != nil {
			return apperrors.NewStorageError(err)
		}
	}
	return nil
}

func validateRequired(fields map[string]string) error {
	missing := make([]string, 0)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
