package game

import "sync"

// Hub tracks live connections and which room each one has joined, and
// fans packets out to a room's members. It mirrors the store's
// membership rather than reading it, so transport bookkeeping never
// holds the store lock.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientID)
}

func (h *Hub) JoinRoom(code, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	members, ok := h.rooms[code]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[code] = members
	}
	members[clientID] = c
}

func (h *Hub) LeaveRoom(code, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[code]
	if !ok {
		return
	}
	delete(members, clientID)
	if len(members) == 0 {
		delete(h.rooms, code)
	}
}

// Send queues a packet for one connection. Dropped silently if the
// client is gone or its queue is full; the write pump owns delivery.
func (h *Hub) Send(clientID string, data []byte) {
	h.mu.RLock()
	c, ok := h.clients[clientID]
	h.mu.RUnlock()
	if ok {
		c.Send(data)
	}
}

func (h *Hub) Broadcast(code string, data []byte) {
	h.broadcast(code, "", data)
}

// BroadcastExcept sends to every room member but the originator, for
// events the origin already learns about through its ack.
func (h *Hub) BroadcastExcept(code, exceptID string, data []byte) {
	h.broadcast(code, exceptID, data)
}

func (h *Hub) broadcast(code, exceptID string, data []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[code]))
	for id, c := range h.rooms[code] {
		if id != exceptID {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.Send(data)
	}
}
