// Package handlers exposes the club use cases over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/club/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

// MembersHandler serves /club/members.
type MembersHandler struct {
	service ports.Service
}

// NewMembersHandler creates the handler for service.
func NewMembersHandler(service ports.Service) *MembersHandler {
	return &MembersHandler{service: service}
}

// Register adds the routes to group. All club routes need a logged in user.
func (h *MembersHandler) Register(group *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	club := group.Group("/club", requireLogin)
	club.GET("/members", h.GetMembers)
	club.GET("/members/:uuid", h.GetMember)
	club.POST("/members/upload", h.Upload)
}

type membersFilter struct {
	Enabled         *bool `form:"filter[enabled]"`
	LicenseEndMonth int   `form:"filter[license_end_month]" binding:"min=0,max=12"`
	LicenseEndYear  int   `form:"filter[license_end_year]" binding:"min=0"`
}

// GetMembers handles GET /club/members. Only enabled members are returned unless
// filter[enabled]=false.
func (h *MembersHandler) GetMembers(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	var filter membersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	command := ports.GetMembersCommand{
		Offset:          pagination.Offset,
		Limit:           pagination.Limit,
		Active:          filter.Enabled == nil || *filter.Enabled,
		LicenseEndMonth: filter.LicenseEndMonth,
		LicenseEndYear:  filter.LicenseEndYear,
	}
	presenter := documents.NewMembersPresenter()
	if err := h.service.GetMembers(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// GetMember handles GET /club/members/:uuid.
func (h *MembersHandler) GetMember(c *gin.Context) {
	presenter := documents.NewMemberPresenter()
	if err := h.service.GetMember(c.Request.Context(), ports.GetMemberCommand{UUID: c.Param("uuid")}, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

// Upload handles POST /club/members/upload with a multipart member_file. The upload
// is a preview unless preview=false.
func (h *MembersHandler) Upload(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	preview := true
	if raw := c.Query("preview"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: invalid preview flag", kernel.ErrValidation))
			return
		}
		preview = parsed
	}
	header, err := c.FormFile("member_file")
	if err != nil {
		apierrors.DomainResponder.Respond(c, apierrors.ErrBadRequest.WithDetail("member_file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	defer file.Close()

	presenter := documents.NewMemberImportPresenter()
	err = h.service.ImportMembers(c.Request.Context(), ports.ImportMembersCommand{
		Filename: header.Filename,
		Content:  file,
		Owner:    principal.Owner,
		Preview:  preview,
	}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}
