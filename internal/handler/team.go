package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/basketball-team-service/internal/repository"
	"github.com/maxviazov/basketball-team-service/internal/service"
	"github.com/maxviazov/basketball-team-service/pkg/response"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.POST("", h.create)
		// Stable wildcard name (team_id) shared with nested player/match routes.
		g.GET("/:team_id", h.getByID)
		g.PATCH("/:team_id", h.update)
	}
	// Listing by owner: /api/v1/users/:user_id/teams
	r.Group("/users").GET("/:user_id/teams", h.listByUser)
}

type createTeamRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo"`
}

func (h *TeamHandler) create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), req.UserID, req.Name, req.Category, req.Photo)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) getByID(c *gin.Context) {
	team, err := h.svc.GetTeam(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) update(c *gin.Context) {
	var patch service.TeamPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.UpdateTeam(c.Request.Context(), c.Param("team_id"), patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) listByUser(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListTeamsByUser(c.Request.Context(), c.Param("user_id"), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
