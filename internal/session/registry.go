package session

import (
	"sync"

	"ethersheet/internal/metrics"
	"ethersheet/internal/models"
)

// Registry tracks every active room in the process. One instance is built at
// startup and handed to each connection's gateway; tests build their own.
//
// Membership changes go through Join and Leave, which hold the registry lock
// for the whole create-or-lookup plus mutation sequence: a join can never
// land in a room that a concurrent last leave is deleting.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry { return &Registry{rooms: make(map[string]*Room)} }

// Join adds c to the room for id, creating the room as needed, and announces
// the change to every member including c.
func (reg *Registry) Join(id string, c *Client, u models.User, announce models.WSFrame) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[id]
	if !ok {
		r = NewRoom(id)
		reg.rooms[id] = r
		metrics.ActiveRooms.Inc()
	}
	r.Join(c, u, announce)
}

// Leave removes c from the room for id, announces the departure to whoever is
// left, and drops the room once it empties. Reports whether c was a member;
// leaving an unknown room or one never joined is a no-op.
func (reg *Registry) Leave(id string, c *Client, announce models.WSFrame) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[id]
	if !ok {
		return false
	}
	remaining, wasMember := r.Leave(c, announce)
	if wasMember && remaining == 0 {
		delete(reg.rooms, id)
		metrics.ActiveRooms.Dec()
	}
	return wasMember
}

func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[id]
	return r, ok
}

// MembersOf snapshots the users present on a sheet. Unknown sheets yield an
// empty slice.
func (reg *Registry) MembersOf(id string) []models.User {
	reg.mu.RLock()
	r, ok := reg.rooms[id]
	reg.mu.RUnlock()
	if !ok {
		return []models.User{}
	}
	return r.Members()
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
