package ws

import (
	"sync"
)

// Channel is a live push connection bound to one authenticated user.
// Implementations must be safe for concurrent Send calls.
type Channel interface {
	Send(payload []byte) error
	Close() error
}

// DefaultMaxChannelsPerUser bounds how many simultaneous channels one
// user may hold in the registry. Registering past the cap evicts the
// oldest channel.
const DefaultMaxChannelsPerUser = 8

// Hub tracks which channels are currently open for which user and
// broadcasts payloads to all of a user's live channels. A user with no
// entry and a user with an empty set are interchangeable: both mean the
// recipient is offline.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[string][]Channel
	maxPerUser int
}

// NewHub creates a new session hub.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string][]Channel),
		maxPerUser: DefaultMaxChannelsPerUser,
	}
}

// Register adds ch to userID's session set. Registering the same channel
// twice is a no-op. If the user is at the per-user cap, the oldest
// channel is evicted and closed.
func (h *Hub) Register(userID string, ch Channel) {
	if userID == "" || ch == nil {
		return
	}

	var evicted Channel

	h.mu.Lock()
	chans := h.sessions[userID]
	for _, existing := range chans {
		if existing == ch {
			h.mu.Unlock()
			return
		}
	}
	if h.maxPerUser > 0 && len(chans) >= h.maxPerUser {
		evicted = chans[0]
		chans = chans[1:]
	}
	h.sessions[userID] = append(chans, ch)
	h.mu.Unlock()

	// Close outside the lock
	if evicted != nil {
		_ = evicted.Close()
	}
}

// Unregister removes ch from userID's session set. Removing a channel
// that was never registered, or was already removed by a concurrent
// disconnect, is a harmless no-op. Empty sets are dropped so the
// registry does not accumulate entries for offline users.
func (h *Hub) Unregister(userID string, ch Channel) {
	if userID == "" || ch == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	chans, ok := h.sessions[userID]
	if !ok {
		return
	}
	for i, existing := range chans {
		if existing == ch {
			h.sessions[userID] = append(chans[:i:i], chans[i+1:]...)
			break
		}
	}
	if len(h.sessions[userID]) == 0 {
		delete(h.sessions, userID)
	}
}

// Broadcast sends payload to every channel currently registered for
// userID. The member set is snapshotted at call time. A failed send on
// one channel never prevents delivery to the others; the failed channel
// is closed and pruned from the registry. Broadcasting to an offline
// user is a no-op.
func (h *Hub) Broadcast(userID string, payload []byte) {
	h.mu.RLock()
	chans := h.sessions[userID]
	snapshot := make([]Channel, len(chans))
	copy(snapshot, chans)
	h.mu.RUnlock()

	for _, ch := range snapshot {
		if err := ch.Send(payload); err != nil {
			_ = ch.Close()
			h.Unregister(userID, ch)
		}
	}
}

// SessionCount returns the number of live channels for a user.
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// TotalSessions returns the number of live channels across all users.
func (h *Hub) TotalSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, chans := range h.sessions {
		total += len(chans)
	}
	return total
}

// Close closes every registered channel and clears the registry.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string][]Channel)
	h.mu.Unlock()

	for _, chans := range sessions {
		for _, ch := range chans {
			_ = ch.Close()
		}
	}
}
