package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/basketball-team-service/internal/model"
	"github.com/maxviazov/basketball-team-service/internal/service"
	"github.com/maxviazov/basketball-team-service/pkg/response"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/stats")
	{
		g.GET("/:stats_id", h.getByID)
		g.PATCH("/:stats_id/increment", h.increment)
	}
	// Bootstrap + listing live under the match: /api/v1/matches/:match_id/stats
	m := r.Group("/matches")
	{
		m.POST("/:match_id/stats", h.initialize)
		m.GET("/:match_id/stats", h.listByMatch)
	}
}

type initializeStatsRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

func (h *StatsHandler) initialize(c *gin.Context) {
	var req initializeStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	docs, err := h.svc.InitializeStats(c.Request.Context(), c.Param("match_id"), req.PlayerIDs)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, docs)
}

func (h *StatsHandler) getByID(c *gin.Context) {
	doc, err := h.svc.GetStats(c.Request.Context(), c.Param("stats_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, doc)
}

func (h *StatsHandler) increment(c *gin.Context) {
	var deltas model.StatDeltas
	if err := c.ShouldBindJSON(&deltas); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	doc, err := h.svc.IncrementStats(c.Request.Context(), c.Param("stats_id"), deltas)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, doc)
}

func (h *StatsHandler) listByMatch(c *gin.Context) {
	docs, err := h.svc.ListStatsByMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, docs)
}
