// Package syncbridge keeps multiple concurrent viewers of the same durable
// store consistent: it subscribes to change notifications and reloads the
// affected collection wholesale whenever another writer mutates it.
package syncbridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/civic-service/internal/persistence"
)

// Reloader replaces one in-memory collection from the durable store.
type Reloader interface {
	Reload(ctx context.Context, key string) error
}

// Bridge reconciles local state on external change events. Last writer
// wins at collection granularity; there is no field-level merge.
type Bridge struct {
	notifier persistence.Notifier
	reloader Reloader
	logger   *zap.Logger
	keys     []string
}

// New constructs a bridge watching the given keys.
func New(notifier persistence.Notifier, reloader Reloader, logger *zap.Logger, keys ...string) *Bridge {
	if len(keys) == 0 {
		keys = []string{
			persistence.KeyServices,
			persistence.KeyComplaints,
			persistence.KeyAreaAlerts,
			persistence.KeyKiosks,
		}
	}
	return &Bridge{
		notifier: notifier,
		reloader: reloader,
		logger:   logger,
		keys:     keys,
	}
}

// Run subscribes and processes change events until ctx is cancelled. A
// failed reload is logged and skipped; the next event for the key retries
// the reload naturally.
func (b *Bridge) Run(ctx context.Context) error {
	events, err := b.notifier.Subscribe(ctx, b.keys...)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-events:
			if !ok {
				return nil
			}
			if err := b.reloader.Reload(ctx, key); err != nil {
				b.logger.Warn("reload after change event failed",
					zap.String("key", key),
					zap.Error(err),
				)
				continue
			}
			b.logger.Debug("collection reloaded", zap.String("key", key))
		}
	}
}
