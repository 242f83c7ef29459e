// Package persistence provides the durable key-value store and change
// notifier the engine runs on. Each key holds one JSON document (an array
// of entities); the notifier carries payload-less change events so readers
// always reload the full key.
package persistence

import "context"

// Well-known storage keys. Each holds a JSON array of the corresponding
// entity type.
const (
	KeyServices   = "services"
	KeyComplaints = "complaints"
	KeyAreaAlerts = "area_alerts"
	KeyKiosks     = "kiosks"
)

// Store is the durable key-value layer. Load reports absence via the bool
// so callers can distinguish an empty document from a missing key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Notifier is the broadcast channel that tells other readers of the same
// store that a key changed. Events carry only the key name.
type Notifier interface {
	Publish(ctx context.Context, key string) error
	// Subscribe delivers the name of each changed key until ctx is
	// cancelled. The returned channel is closed on cancellation.
	Subscribe(ctx context.Context, keys ...string) (<-chan string, error)
}
