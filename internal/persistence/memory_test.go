package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLoadAbsent(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Load(context.Background(), KeyComplaints)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyServices, []byte(`[{"id":"SRQ-1"}]`)))

	raw, ok, err := store.Load(ctx, KeyServices)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"SRQ-1"}]`, string(raw))

	// The stored copy is isolated from caller mutation.
	raw[0] = 'X'
	again, _, err := store.Load(ctx, KeyServices)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"SRQ-1"}]`, string(again))
}

func TestMemoryNotifierDeliversToMatchingSubscribers(t *testing.T) {
	notifier := NewMemoryNotifier()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	complaints, err := notifier.Subscribe(ctx, KeyComplaints)
	require.NoError(t, err)
	kiosks, err := notifier.Subscribe(ctx, KeyKiosks)
	require.NoError(t, err)

	require.NoError(t, notifier.Publish(ctx, KeyComplaints))

	select {
	case key := <-complaints:
		assert.Equal(t, KeyComplaints, key)
	case <-time.After(time.Second):
		t.Fatal("expected complaints event")
	}

	select {
	case key := <-kiosks:
		t.Fatalf("unexpected event for %s", key)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryNotifierSubscriptionClosesOnCancel(t *testing.T) {
	notifier := NewMemoryNotifier()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := notifier.Subscribe(ctx, KeyServices)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected channel close")
	}
}
