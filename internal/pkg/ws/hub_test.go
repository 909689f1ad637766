package ws

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testChannel records sent payloads and can be told to fail
type testChannel struct {
	mu       sync.Mutex
	payloads [][]byte
	failSend bool
	closed   bool
}

func (c *testChannel) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return errors.New("send failed")
	}
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *testChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *testChannel) sent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func (c *testChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHub_BroadcastToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()

	// Must not panic or create an entry
	hub.Broadcast("nobody", []byte("hello"))
	assert.Equal(t, 0, hub.TotalSessions())
}

func TestHub_RegisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	ch := &testChannel{}

	hub.Register("user-1", ch)
	hub.Register("user-1", ch)

	assert.Equal(t, 1, hub.SessionCount("user-1"))
}

func TestHub_BroadcastReachesEveryChannel(t *testing.T) {
	hub := NewHub()
	first := &testChannel{}
	second := &testChannel{}

	hub.Register("user-1", first)
	hub.Register("user-1", second)
	hub.Register("user-2", &testChannel{})

	hub.Broadcast("user-1", []byte("event"))

	assert.Equal(t, 1, first.sent())
	assert.Equal(t, 1, second.sent())
	assert.Equal(t, 0, hub.sessions["user-2"][0].(*testChannel).sent())
}

func TestHub_FailedChannelIsPrunedOthersStillDelivered(t *testing.T) {
	hub := NewHub()
	failing := &testChannel{failSend: true}
	healthy := &testChannel{}

	hub.Register("user-1", failing)
	hub.Register("user-1", healthy)

	hub.Broadcast("user-1", []byte("event"))

	assert.Equal(t, 1, healthy.sent())
	assert.True(t, failing.isClosed())
	assert.Equal(t, 1, hub.SessionCount("user-1"))

	// A second broadcast only touches the healthy channel
	hub.Broadcast("user-1", []byte("again"))
	assert.Equal(t, 2, healthy.sent())
}

func TestHub_UnregisterUnknownChannelIsNoop(t *testing.T) {
	hub := NewHub()
	registered := &testChannel{}
	stranger := &testChannel{}

	hub.Register("user-1", registered)
	hub.Unregister("user-1", stranger)
	hub.Unregister("user-2", stranger)

	assert.Equal(t, 1, hub.SessionCount("user-1"))
}

func TestHub_LastUnregisterDropsTheEntry(t *testing.T) {
	hub := NewHub()
	ch := &testChannel{}

	hub.Register("user-1", ch)
	hub.Unregister("user-1", ch)

	hub.mu.RLock()
	_, exists := hub.sessions["user-1"]
	hub.mu.RUnlock()
	assert.False(t, exists)
}

func TestHub_CapEvictsOldestChannel(t *testing.T) {
	hub := NewHub()

	channels := make([]*testChannel, 0, DefaultMaxChannelsPerUser+1)
	for i := 0; i < DefaultMaxChannelsPerUser+1; i++ {
		ch := &testChannel{}
		channels = append(channels, ch)
		hub.Register("user-1", ch)
	}

	require.Equal(t, DefaultMaxChannelsPerUser, hub.SessionCount("user-1"))
	assert.True(t, channels[0].isClosed())

	hub.Broadcast("user-1", []byte("event"))
	assert.Equal(t, 0, channels[0].sent())
	assert.Equal(t, 1, channels[1].sent())
	assert.Equal(t, 1, channels[len(channels)-1].sent())
}

func TestHub_CloseClearsEverything(t *testing.T) {
	hub := NewHub()
	ch := &testChannel{}
	hub.Register("user-1", ch)

	hub.Close()

	assert.True(t, ch.isClosed())
	assert.Equal(t, 0, hub.TotalSessions())
}

func TestHub_ConcurrentRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := &testChannel{}
			hub.Register("user-1", ch)
			hub.Broadcast("user-1", []byte("event"))
			hub.Unregister("user-1", ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalSessions())
}
