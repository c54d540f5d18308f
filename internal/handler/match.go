package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/basketball-team-service/internal/repository"
	"github.com/maxviazov/basketball-team-service/internal/service"
	"github.com/maxviazov/basketball-team-service/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		// Use a stable wildcard name (match_id) so nested routes can reuse it without Gin conflicts.
		g.GET("/:match_id", h.getByID)
		g.PATCH("/:match_id", h.update)
		g.PATCH("/:match_id/period", h.recordPeriod)
		g.GET("/:match_id/periods", h.periodHistory)
		g.GET("/:match_id/periods/deltas", h.periodDeltas)
	}
	// Listing by team id: /api/v1/teams/:team_id/matches
	r.Group("/teams").GET("/:team_id/matches", h.listByTeam)
}

func (h *MatchHandler) create(c *gin.Context) {
	var req service.CreateMatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // binding details stay internal
		return
	}
	match, err := h.svc.CreateMatch(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, match)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	match, err := h.svc.GetMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

// update handles the general match patch. The body is decoded with unknown
// fields disallowed, so a client trying to overwrite periods_history directly
// gets a 400 instead of silently bypassing the period ledger.
func (h *MatchHandler) update(c *gin.Context) {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	var patch service.MatchPatch
	if err := dec.Decode(&patch); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{
			{Field: "body", Message: "unknown or malformed fields; periods_history is only writable via the period endpoint"},
		}))
		return
	}
	match, err := h.svc.UpdateMatch(c.Request.Context(), c.Param("match_id"), patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) recordPeriod(c *gin.Context) {
	var req service.RecordPeriodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	match, err := h.svc.RecordPeriod(c.Request.Context(), c.Param("match_id"), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) periodHistory(c *gin.Context) {
	history, err := h.svc.GetPeriodHistory(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, history)
}

func (h *MatchHandler) periodDeltas(c *gin.Context) {
	deltas, err := h.svc.GetPeriodDeltas(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, deltas)
}

func (h *MatchHandler) listByTeam(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListMatchesByTeam(c.Request.Context(), c.Param("team_id"), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
