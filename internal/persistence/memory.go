package persistence

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-terminal demos.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load fetches the document stored under key.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, true, nil
}

// Save writes the document under key.
func (s *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = cp
	return nil
}

// MemoryNotifier is a synchronous in-process Notifier. Publish fans the key
// out to every subscriber whose key set includes it.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs []*memorySubscription
}

type memorySubscription struct {
	keys map[string]struct{}
	ch   chan string
	done <-chan struct{}
}

// NewMemoryNotifier creates a notifier instance.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// Publish delivers key to matching subscribers. Slow subscribers drop the
// event rather than block the publisher; the next reload catches them up.
func (n *MemoryNotifier) Publish(ctx context.Context, key string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		if _, ok := sub.keys[key]; !ok {
			continue
		}
		select {
		case sub.ch <- key:
		case <-sub.done:
		default:
		}
	}
	return nil
}

// Subscribe delivers changed key names until ctx is cancelled.
func (n *MemoryNotifier) Subscribe(ctx context.Context, keys ...string) (<-chan string, error) {
	keySet := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		keySet[key] = struct{}{}
	}
	sub := &memorySubscription{
		keys: keySet,
		ch:   make(chan string, 16),
		done: ctx.Done(),
	}

	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()

	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case key := <-sub.ch:
				select {
				case out <- key:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
