package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fbraem/kwai/internal/domains/portal/adapters/http/documents"
	"github.com/fbraem/kwai/internal/domains/portal/ports"
	"github.com/fbraem/kwai/internal/shared/authn"
	apierrors "github.com/fbraem/kwai/internal/shared/errors"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type pagesFilter struct {
	Application int64  `form:"filter[application]" binding:"min=0"`
	Enabled     bool   `form:"filter[enabled]"`
	User        string `form:"filter[user]"`
}

func (h *PortalHandler) GetPages(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	var filter pagesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	presenter := documents.NewPagesPresenter()
	command := ports.GetPagesCommand{
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		ApplicationID: filter.Application,
		Enabled:       onlyEnabled(c, filter.Enabled),
		UserUUID:      filter.User,
	}
	if err := h.service.GetPages(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) GetPage(c *gin.Context) {
	id, ok := pathID(c, "page")
	if !ok {
		return
	}
	presenter := documents.NewPagePresenter()
	command := ports.GetPageCommand{ID: id, Enabled: onlyEnabled(c, false)}
	if err := h.service.GetPage(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) CreatePage(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	command, err := bindPage(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewPagePresenter()
	err = h.service.CreatePage(c.Request.Context(), ports.CreatePageCommand{PageCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *PortalHandler) UpdatePage(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "page")
	if !ok {
		return
	}
	command, err := bindPage(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewPagePresenter()
	err = h.service.UpdatePage(c.Request.Context(), ports.UpdatePageCommand{ID: id, PageCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) DeletePage(c *gin.Context) {
	id, ok := pathID(c, "page")
	if !ok {
		return
	}
	if err := h.service.DeletePage(c.Request.Context(), ports.DeletePageCommand{ID: id}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindPage(c *gin.Context) (ports.PageCommand, error) {
	resource, err := jsonapi.BindResource[documents.PageAttributes](c)
	if err != nil {
		return ports.PageCommand{}, err
	}
	application, err := applicationID(resource.Relationship("application"))
	if err != nil {
		return ports.PageCommand{}, err
	}
	attributes := resource.Attributes
	return ports.PageCommand{
		Enabled:       attributes.Enabled,
		Texts:         textCommands(attributes.Texts),
		ApplicationID: application,
		Priority:      attributes.Priority,
		Remark:        attributes.Remark,
	}, nil
}
