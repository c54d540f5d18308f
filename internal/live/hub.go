// Package live fans match and stat updates out to websocket subscribers.
// One hub goroutine owns the client set; everything reaches it through
// channels, so no shared state is mutated from handler goroutines.
package live

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/model"
)

// Event types pushed to subscribers.
const (
	EventMatchUpdate = "match_update"
	EventStatsUpdate = "stats_update"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type      string    `json:"type"`
	MatchID   string    `json:"match_id"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"ts"`
}

// Hub maintains the set of active clients and broadcasts events to the ones
// subscribed to the event's match.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	log        zerolog.Logger
}

const broadcastBuffer = 256

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        logger.With().Str("module", "live").Str("component", "hub").Logger(),
	}
}

// Run owns the client set until ctx is canceled. Call it in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info().Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug().Str("client_id", c.ID).Str("match_id", c.MatchID).Int("clients", len(h.clients)).Msg("client connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client disconnected")
			}
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Broadcast queues an event for delivery. Non-blocking: if the buffer is
// full the event is dropped, since a fresh snapshot follows every write.
func (h *Hub) Broadcast(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn().Str("match_id", ev.MatchID).Msg("broadcast buffer full, dropping event")
	}
}

// PublishMatch implements the service publisher contract.
func (h *Hub) PublishMatch(m model.Match) {
	h.Broadcast(Event{Type: EventMatchUpdate, MatchID: m.ID.Hex(), Payload: m, Timestamp: time.Now().UTC()})
}

// PublishStats implements the service publisher contract.
func (h *Hub) PublishStats(s model.PlayerStats) {
	h.Broadcast(Event{Type: EventStatsUpdate, MatchID: s.MatchID.Hex(), Payload: s, Timestamp: time.Now().UTC()})
}

func (h *Hub) deliver(ev Event) {
	for c := range h.clients {
		if c.MatchID != ev.MatchID {
			continue
		}
		if !c.trySend(ev) {
			// Client buffer full: it is too slow, cut it loose rather than
			// letting it stall the hub.
			h.log.Warn().Str("client_id", c.ID).Msg("client buffer full, disconnecting")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) shutdown() {
	h.log.Info().Int("clients", len(h.clients)).Msg("hub shutting down")
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
