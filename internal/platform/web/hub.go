package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole"
)

// writeWait bounds how long a slow client may block a state write.
const writeWait = 5 * time.Second

// subscriber is one connected websocket client. The mutex serializes writes:
// the broadcast loop and heartbeat acks share the connection.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// write sends one marshaled message under the subscriber's write lock.
func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	//nolint:errcheck // deadline errors surface on the write itself
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub owns the shared simulation and the set of connected clients. All
// clients see the same hole; input from every client lands in the same
// per-tick frame.
type Hub struct {
	mu          sync.Mutex
	game        *sinkhole.Game
	input       core.InputFrame
	subscribers map[*subscriber]struct{}

	tickRate int
	logger   *log.Logger
}

// NewHub creates a hub around the given game. The game must already be
// registered state; the hub resets it with the tick rate before simulating.
func NewHub(game *sinkhole.Game, tickRate int, logger *log.Logger) *Hub {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Hub{
		game:        game,
		input:       core.NewInputFrame(),
		subscribers: make(map[*subscriber]struct{}),
		tickRate:    tickRate,
		logger:      logger,
	}
}

// Subscribe registers a client connection and returns its subscriber handle
// together with the current snapshot for the initial state message.
func (h *Hub) Subscribe(conn *websocket.Conn) (*subscriber, sinkhole.Snapshot) {
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	snap := h.game.Snapshot()
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("client connected", "clients", count)
	return sub, snap
}

// Disconnect removes a client connection.
func (h *Hub) Disconnect(sub *subscriber) {
	h.mu.Lock()
	_, known := h.subscribers[sub]
	delete(h.subscribers, sub)
	count := len(h.subscribers)
	h.mu.Unlock()

	sub.conn.Close()
	if known {
		h.logger.Info("client disconnected", "clients", count)
	}
}

// ApplyInput merges a client's held actions into the next tick's frame.
// Unknown action names are dropped.
func (h *Hub) ApplyInput(actions []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, name := range actions {
		if a := core.ParseAction(name); a != core.ActionNone {
			h.input.Set(a)
		}
	}
}

// Snapshot returns the current simulation state.
func (h *Hub) Snapshot() sinkhole.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game.Snapshot()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// RunSimulation drives the shared game at the hub's tick rate until stop is
// closed, broadcasting a state message after every tick.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.tickRate))
	defer ticker.Stop()

	h.mu.Lock()
	h.game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: h.tickRate,
		Seed:     time.Now().UnixNano(),
	})
	h.mu.Unlock()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.step()
		}
	}
}

// step advances the simulation one tick and pushes the new state out.
func (h *Hub) step() {
	h.mu.Lock()
	h.game.Step(h.input)
	h.input.Clear()
	snap := h.game.Snapshot()

	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	msg := stateMessage{
		Type:       "state",
		ServerTime: time.Now().UnixMilli(),
		State:      snap,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot marshal state", "error", err)
		return
	}

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.Disconnect(sub)
		}
	}
}
