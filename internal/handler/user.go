package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/basketball-team-service/internal/service"
	"github.com/maxviazov/basketball-team-service/pkg/response"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/users")
	{
		g.POST("", h.create)
		g.GET("/:user_id", h.getByID)
		g.PATCH("/:user_id", h.update)
	}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *UserHandler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, user)
}

func (h *UserHandler) getByID(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, user)
}

func (h *UserHandler) update(c *gin.Context) {
	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("user_id"), patch)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, user)
}
