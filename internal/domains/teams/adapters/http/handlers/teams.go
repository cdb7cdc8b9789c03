// Package handlers exposes the team use cases over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/teams/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// TeamsHandler serves /teams.
type TeamsHandler struct {
	service ports.Service
}

func NewTeamsHandler(service ports.Service) *TeamsHandler {
	return &TeamsHandler{service: service}
}

// Register adds the routes to group. Reading teams is public, everything else needs a
// logged in user.
func (h *TeamsHandler) Register(group *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	teams := group.Group("/teams")
	teams.GET("", h.GetTeams)
	teams.GET("/members", requireLogin, h.GetMembers)
	teams.GET("/:id", h.GetTeam)
	teams.POST("", requireLogin, h.CreateTeam)
	teams.PATCH("/:id", requireLogin, h.UpdateTeam)
	teams.DELETE("/:id", requireLogin, h.DeleteTeam)
	teams.GET("/:id/members", requireLogin, h.GetTeamMembers)
	teams.POST("/:id/members", requireLogin, h.CreateTeamMember)
}

func (h *TeamsHandler) GetTeams(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTeamsPresenter()
	command := ports.GetTeamsCommand{Offset: pagination.Offset, Limit: pagination.Limit}
	if err := h.service.GetTeams(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TeamsHandler) GetTeam(c *gin.Context) {
	id, ok := teamID(c)
	if !ok {
		return
	}
	presenter := documents.NewTeamPresenter()
	if err := h.service.GetTeam(c.Request.Context(), ports.GetTeamCommand{ID: id}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TeamsHandler) CreateTeam(c *gin.Context) {
	resource, err := jsonapi.BindResource[documents.TeamAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTeamPresenter()
	command := ports.CreateTeamCommand{TeamCommand: teamCommand(resource.Attributes)}
	if err := h.service.CreateTeam(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *TeamsHandler) UpdateTeam(c *gin.Context) {
	id, ok := teamID(c)
	if !ok {
		return
	}
	resource, err := jsonapi.BindResource[documents.TeamAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewTeamPresenter()
	command := ports.UpdateTeamCommand{ID: id, TeamCommand: teamCommand(resource.Attributes)}
	if err := h.service.UpdateTeam(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *TeamsHandler) DeleteTeam(c *gin.Context) {
	id, ok := teamID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTeam(c.Request.Context(), ports.DeleteTeamCommand{ID: id}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type membersFilter struct {
	TeamID int64 `form:"filter[team]" binding:"min=0"`
	InTeam bool  `form:"filter[in_team]"`
}

// GetMembers handles GET /teams/members. filter[team] with filter[in_team]=false
// returns the members that can still join the team.
func (h *TeamsHandler) GetMembers(c *gin.Context) {
	var filter membersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	h.presentMembers(c, filter.TeamID, filter.InTeam)
}

func (h *TeamsHandler) GetTeamMembers(c *gin.Context) {
	id, ok := teamID(c)
	if !ok {
		return
	}
	h.presentMembers(c, id, true)
}

func (h *TeamsHandler) presentMembers(c *gin.Context, team int64, inTeam bool) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewMembersPresenter()
	command := ports.GetTeamMembersCommand{TeamID: team, InTeam: inTeam, Offset: pagination.Offset, Limit: pagination.Limit}
	if err := h.service.GetTeamMembers(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// CreateTeamMember handles POST /teams/:id/members. The id of the team_members
// resource is the uuid of the member.
func (h *TeamsHandler) CreateTeamMember(c *gin.Context) {
	id, ok := teamID(c)
	if !ok {
		return
	}
	resource, err := jsonapi.BindResource[documents.TeamMemberAttributes](c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	active := resource.Attributes.Active == nil || *resource.Attributes.Active
	presenter := documents.NewTeamPresenter()
	command := ports.CreateTeamMemberCommand{TeamID: id, MemberUUID: resource.ID, Active: active}
	if err := h.service.CreateTeamMember(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func teamCommand(attributes documents.TeamAttributes) ports.TeamCommand {
	return ports.TeamCommand{Name: attributes.Name, Active: attributes.Active, Remark: attributes.Remark}
}

func teamID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: invalid team id %q", kernel.ErrValidation, c.Param("id")))
		return 0, false
	}
	return id, true
}
