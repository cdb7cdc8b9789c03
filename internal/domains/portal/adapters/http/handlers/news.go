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

type newsFilter struct {
	Year        int    `form:"filter[year]" binding:"min=0"`
	Month       int    `form:"filter[month]" binding:"min=0,max=12"`
	Promoted    bool   `form:"filter[promoted]"`
	Enabled     bool   `form:"filter[enabled]"`
	Application string `form:"filter[application]"`
	User        string `form:"filter[user]"`
}

// GetNewsItems handles GET /news. filter[application] accepts the id or the name of
// an application.
func (h *PortalHandler) GetNewsItems(c *gin.Context) {
	pagination, err := jsonapi.BindPagination(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	var filter newsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.DomainResponder.RespondError(c, fmt.Errorf("%w: %w", kernel.ErrValidation, err))
		return
	}
	command := ports.GetNewsItemsCommand{
		Limit:    pagination.Limit,
		Offset:   pagination.Offset,
		Year:     filter.Year,
		Month:    filter.Month,
		Promoted: filter.Promoted,
		Enabled:  onlyEnabled(c, filter.Enabled),
		UserUUID: filter.User,
	}
	if filter.Application != "" {
		if id, err := kernel.ParseIntIdentifier(filter.Application); err == nil {
			command.ApplicationID = id.Value()
		} else {
			command.ApplicationName = filter.Application
		}
	}
	presenter := documents.NewNewsItemsPresenter()
	if err := h.service.GetNewsItems(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) GetNewsItem(c *gin.Context) {
	id, ok := pathID(c, "news item")
	if !ok {
		return
	}
	presenter := documents.NewNewsItemPresenter()
	command := ports.GetNewsItemCommand{ID: id, Enabled: onlyEnabled(c, false)}
	if err := h.service.GetNewsItem(c.Request.Context(), command, presenter); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) CreateNewsItem(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	command, err := bindNewsItem(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewNewsItemPresenter()
	err = h.service.CreateNewsItem(c.Request.Context(), ports.CreateNewsItemCommand{NewsItemCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusCreated, presenter.Document())
}

func (h *PortalHandler) UpdateNewsItem(c *gin.Context) {
	principal, ok := authn.Get(c)
	if !ok {
		apierrors.DomainResponder.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "news item")
	if !ok {
		return
	}
	command, err := bindNewsItem(c)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	presenter := documents.NewNewsItemPresenter()
	err = h.service.UpdateNewsItem(c.Request.Context(), ports.UpdateNewsItemCommand{ID: id, NewsItemCommand: command, Owner: principal.Owner}, presenter)
	if err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	jsonapi.Respond(c, http.StatusOK, presenter.Document())
}

func (h *PortalHandler) DeleteNewsItem(c *gin.Context) {
	id, ok := pathID(c, "news item")
	if !ok {
		return
	}
	if err := h.service.DeleteNewsItem(c.Request.Context(), ports.DeleteNewsItemCommand{ID: id}); err != nil {
		apierrors.DomainResponder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindNewsItem(c *gin.Context) (ports.NewsItemCommand, error) {
	resource, err := jsonapi.BindResource[documents.NewsItemAttributes](c)
	if err != nil {
		return ports.NewsItemCommand{}, err
	}
	application, err := applicationID(resource.Relationship("application"))
	if err != nil {
		return ports.NewsItemCommand{}, err
	}
	attributes := resource.Attributes
	return ports.NewsItemCommand{
		Enabled:          attributes.Enabled,
		Texts:            textCommands(attributes.Texts),
		ApplicationID:    application,
		PublishDate:      attributes.PublishDate.String(),
		EndDate:          attributes.EndDate.String(),
		Promotion:        attributes.Promotion.Priority,
		PromotionEndDate: attributes.Promotion.EndDate.String(),
		Remark:           attributes.Remark,
	}, nil
}
