package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/basketball-team-service/internal/live"
	"github.com/maxviazov/basketball-team-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints; hub may be nil when
// live fan-out is disabled (tests, batch tools).
func Register(r *gin.Engine, store Pinger, userSvc service.UserService, teamSvc service.TeamService, playerSvc service.PlayerService, matchSvc service.MatchService, statsSvc service.StatsService, hub *live.Hub, limit RateLimit) {
	h := NewHealthHandler(store)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	api.Use(WriteLimiter(limit))
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewUserHandler(userSvc).Register(api)
		NewTeamHandler(teamSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api)
		NewMatchHandler(matchSvc).Register(api)
		NewStatsHandler(statsSvc).Register(api)
		if hub != nil {
			NewLiveHandler(hub).Register(api)
		}
	}
}
