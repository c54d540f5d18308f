package live

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Subscribers only listen; anything beyond a pong frame is oversized.
	maxMessageSize = 512

	sendBufferSize = 64
)

// Client is one websocket subscriber, pinned to a single match.
type Client struct {
	ID      string
	MatchID string

	conn *websocket.Conn
	send chan Event
	hub  *Hub
	log  zerolog.Logger
}

func NewClient(id, matchID string, conn *websocket.Conn, hub *Hub, logger zerolog.Logger) *Client {
	return &Client{
		ID:      id,
		MatchID: matchID,
		conn:    conn,
		send:    make(chan Event, sendBufferSize),
		hub:     hub,
		log:     logger.With().Str("module", "live").Str("client_id", id).Logger(),
	}
}

// trySend queues an event without blocking the hub loop.
func (c *Client) trySend(ev Event) bool {
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// ReadPump drains (and discards) inbound frames so pings/pongs and close
// handshakes work. It unregisters the client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("unexpected close")
			}
			return
		}
	}
}

// WritePump pushes queued events to the peer and keeps the connection alive
// with periodic pings. A closed send channel means the hub dropped us.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				c.log.Debug().Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
