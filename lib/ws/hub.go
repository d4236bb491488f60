package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// RoomMessage is delivered to every client of Room.
type RoomMessage struct {
	Room string
	Data []byte
}

// Hub maintains the set of active Clients per document room and broadcasts
// messages to them.
type Hub struct {
	// Registered Clients by room.
	Rooms        map[string]map[*Client]bool
	RoomsRWMutex sync.RWMutex

	Broadcast  chan RoomMessage
	Register   chan *Client
	Unregister chan *Client

	logger *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		Broadcast:  make(chan RoomMessage, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.Register:
			if client == nil {
				continue
			}
			h.RoomsRWMutex.Lock()
			room, ok := h.Rooms[client.Room]
			if !ok {
				room = make(map[*Client]bool)
				h.Rooms[client.Room] = room
			}
			room[client] = true
			h.RoomsRWMutex.Unlock()
		case client := <-h.Unregister:
			if client == nil {
				continue
			}
			h.RoomsRWMutex.Lock()
			h.removeLocked(client)
			h.RoomsRWMutex.Unlock()
		case message := <-h.Broadcast:
			h.RoomsRWMutex.Lock()
			for client := range h.Rooms[message.Room] {
				if !client.Reply(message.Data) {
					h.logger.Warnw("Removing client due to full channel", "room", message.Room)
					h.removeLocked(client)
				}
			}
			h.RoomsRWMutex.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	room, ok := h.Rooms[client.Room]
	if !ok {
		return
	}
	if _, ok := room[client]; ok {
		delete(room, client)
		client.close()
	}
	if len(room) == 0 {
		delete(h.Rooms, client.Room)
	}
}

// RoomSize returns the number of clients connected to room.
func (h *Hub) RoomSize(room string) int {
	h.RoomsRWMutex.RLock()
	defer h.RoomsRWMutex.RUnlock()
	return len(h.Rooms[room])
}

// ActiveRooms returns the number of rooms with at least one client.
func (h *Hub) ActiveRooms() int {
	h.RoomsRWMutex.RLock()
	defer h.RoomsRWMutex.RUnlock()
	return len(h.Rooms)
}
