package realtime

import (
	"context"
	"sync"

	"admitdesk/models"

	"github.com/google/uuid"
)

const defaultSessionBuffer = 16

// Publisher delivers an event to every session joined to room.
type Publisher interface {
	Publish(ctx context.Context, room string, event models.RealtimeEvent) error
}

// Session is one live subscriber of a room.
type Session struct {
	ID   string
	Room string

	events chan models.RealtimeEvent
	hub    *Hub
}

// Events yields the events emitted to the session's room. Closed on Leave.
func (s *Session) Events() <-chan models.RealtimeEvent {
	return s.events
}

// Close leaves the room. Safe to call more than once.
func (s *Session) Close() {
	s.hub.Leave(s)
}

// Hub is the room registry: room -> set of live sessions.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]*Session
	buffer int
}

// NewHub returns an empty registry whose sessions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultSessionBuffer
	}
	return &Hub{
		rooms:  make(map[string]map[string]*Session),
		buffer: buffer,
	}
}

// Join registers a new session in room.
func (h *Hub) Join(room string) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		Room:   room,
		events: make(chan models.RealtimeEvent, h.buffer),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Session)
		h.rooms[room] = members
	}
	members[s.ID] = s
	return s
}

// Leave removes the session and closes its event channel.
func (h *Hub) Leave(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[s.Room]
	if !ok {
		return
	}
	if _, ok := members[s.ID]; !ok {
		return
	}
	delete(members, s.ID)
	close(s.events)
	if len(members) == 0 {
		delete(h.rooms, s.Room)
	}
}

// Emit hands event to every session in room without blocking and returns how
// many sessions accepted it. A session with a full buffer misses the event.
func (h *Hub) Emit(room string, event models.RealtimeEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, s := range h.rooms[room] {
		select {
		case s.events <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// RoomSize returns the number of sessions joined to room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Publish emits to local sessions only.
func (h *Hub) Publish(_ context.Context, room string, event models.RealtimeEvent) error {
	h.Emit(room, event)
	return nil
}
