package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/maxviazov/basketball-team-service/internal/live"
	"github.com/maxviazov/basketball-team-service/internal/service"
	"github.com/maxviazov/basketball-team-service/pkg/response"
)

// LiveHandler upgrades subscribers onto the broadcast hub, one match each.
type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mobile clients connect from app origins; auth happens upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) Register(r *gin.RouterGroup) {
	r.Group("/matches").GET("/:match_id/live", h.subscribe)
}

func (h *LiveHandler) subscribe(c *gin.Context) {
	matchID := c.Param("match_id")
	if matchID == "" {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	client := live.NewClient(uuid.NewString(), matchID, conn, h.hub, zerolog.Ctx(c.Request.Context()).With().Logger())
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
