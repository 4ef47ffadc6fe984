package session

import (
	"sync"

	"ethersheet/internal/models"
)

// Room is the set of connections currently present on one sheet. Membership
// changes and the presence broadcast they trigger happen under the same lock
// hold, so every member observes joins and leaves in the order they landed.
type Room struct {
	ID      string
	mu      sync.Mutex
	members map[*Client]models.User
}

func NewRoom(id string) *Room {
	return &Room{ID: id, members: make(map[*Client]models.User)}
}

// Join adds c to the room and announces the change to every member, the
// joiner included. Joining twice from the same connection keeps a single
// membership.
func (r *Room) Join(c *Client, u models.User, announce models.WSFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c] = u
	for m := range r.members {
		m.Send(announce)
	}
}

// Leave removes c and announces the departure to whoever is left. Leaving a
// room c never joined is a no-op and does not announce. Returns the remaining
// member count and whether c was a member.
func (r *Room) Leave(c *Client, announce models.WSFrame) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c]; !ok {
		return len(r.members), false
	}
	delete(r.members, c)
	for m := range r.members {
		m.Send(announce)
	}
	return len(r.members), true
}

// Relay sends frame to every member except the sender.
func (r *Room) Relay(sender *Client, frame models.WSFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for m := range r.members {
		if m == sender {
			continue
		}
		m.Send(frame)
	}
}

// Members returns a consistent snapshot of the users present.
func (r *Room) Members() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.members))
	for _, u := range r.members {
		out = append(out, u)
	}
	return out
}

func (r *Room) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
